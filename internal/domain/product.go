package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryResidential ProductCategory = "residential"
	CategoryCommercial  ProductCategory = "commercial"
)

// ValidCategory reports whether v is one of the declared catalog categories.
func ValidCategory(v string) bool {
	switch ProductCategory(v) {
	case CategoryResidential, CategoryCommercial:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    ProductCategory `gorm:"size:32;not null;index" json:"category"`
	Brand       string          `gorm:"size:255;index" json:"brand"`
	Rating      float64         `gorm:"not null" json:"rating"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
