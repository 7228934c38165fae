package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartRepository interface {
	FindByUser(userID uint) (*domain.Cart, error)
	FindOrCreate(userID uint) (*domain.Cart, error)
	ListItems(cartID uint) ([]domain.CartItem, error)
	AddItem(cartID, productID uint, quantity int) (*domain.CartItem, error)
	UpdateItemQuantity(cartID, productID uint, quantity int) (*domain.CartItem, error)
	RemoveItem(cartID, productID uint) error
}

type GormCartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) FindByUser(userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "cart", "find_by_user", "not_found")
			return nil, ErrCartNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "cart", "find_by_user", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "cart", "find_by_user", "success")
	return &cart, nil
}

// FindOrCreate is safe against concurrent requests for the same user: the
// insert is ON CONFLICT DO NOTHING against the unique user_id index, and the
// surviving row is reloaded afterwards either way.
func (r *GormCartRepository) FindOrCreate(userID uint) (*domain.Cart, error) {
	cart := domain.Cart{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart", "find_or_create", "error")
		return nil, err
	}
	var out domain.Cart
	if err := r.db.Where("user_id = ?", userID).First(&out).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart", "find_or_create", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "cart", "find_or_create", "success")
	return &out, nil
}

func (r *GormCartRepository) ListItems(cartID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := r.db.Where("cart_id = ?", cartID).Order("id asc").Find(&items).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "cart_item", "list", "success")
	return items, nil
}

func (r *GormCartRepository) AddItem(cartID, productID uint, quantity int) (*domain.CartItem, error) {
	item := domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := r.db.Create(&item).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "add", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "cart_item", "add", "success")
	return &item, nil
}

func (r *GormCartRepository) UpdateItemQuantity(cartID, productID uint, quantity int) (*domain.CartItem, error) {
	res := r.db.Model(&domain.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "update", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "update", "not_found")
		return nil, ErrCartItemNotFound
	}
	var item domain.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "update", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "cart_item", "update", "success")
	return &item, nil
}

func (r *GormCartRepository) RemoveItem(cartID, productID uint) error {
	res := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&domain.CartItem{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "remove", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "cart_item", "remove", "not_found")
		return ErrCartItemNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "cart_item", "remove", "success")
	return nil
}
