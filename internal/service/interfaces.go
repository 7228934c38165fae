package service

import (
	"context"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Search(ctx context.Context, filter repository.ProductFilter, sortBy string, page repository.LimitOffset) (repository.Page[domain.Product], error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

type CartService interface {
	View(ctx context.Context, userID uint) (*CartView, error)
	Add(ctx context.Context, userID, productID uint, quantity int) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, productID uint) error
}

type PropertyService interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id uint) (*domain.Property, error)
	Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id uint, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id uint) error
	DueToday(ctx context.Context) ([]domain.Property, error)
	DueNext7Days(ctx context.Context) ([]domain.Property, error)
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
