package database

import (
	"gorm.io/gorm"

	"github.com/propmart/catalog-backend/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Property{},
	)
}
