package service

import (
	"context"
	"errors"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
	"github.com/propmart/catalog-backend/internal/repository"
)

var ErrCartInvalidQuantity = errors.New("quantity must be >= 1")

// CartView is the cart returned to the client: the aggregate plus its lines.
type CartView struct {
	Cart  domain.Cart       `json:"cart"`
	Items []domain.CartItem `json:"items"`
}

type CartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartServiceImpl {
	return &CartServiceImpl{carts: carts, products: products}
}

// View returns the user's cart and its items. A user who has never added
// anything has no cart row; that surfaces as repository.ErrCartNotFound.
func (s *CartServiceImpl) View(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		observability.RecordCartOperation(ctx, "view", cartOutcome(err))
		return nil, err
	}
	items, err := s.carts.ListItems(cart.ID)
	if err != nil {
		observability.RecordCartOperation(ctx, "view", "error")
		return nil, err
	}
	observability.RecordCartOperation(ctx, "view", "success")
	return &CartView{Cart: *cart, Items: items}, nil
}

// Add validates the product, then appends a line to the user's cart, creating
// the cart on first use. Adding a product already in the cart inserts a second
// row rather than bumping the existing quantity.
// TODO: collapse duplicate (cart, product) rows into a quantity increment once
// clients stop relying on PUT /cart to manage quantities.
func (s *CartServiceImpl) Add(ctx context.Context, userID, productID uint, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		observability.RecordCartOperation(ctx, "add", "bad_request")
		return nil, ErrCartInvalidQuantity
	}
	if _, err := s.products.FindByID(productID); err != nil {
		observability.RecordCartOperation(ctx, "add", cartOutcome(err))
		return nil, err
	}

	cart, err := s.carts.FindOrCreate(userID)
	if err != nil {
		observability.RecordCartOperation(ctx, "add", "error")
		return nil, err
	}
	item, err := s.carts.AddItem(cart.ID, productID, quantity)
	if err != nil {
		observability.RecordCartOperation(ctx, "add", "error")
		return nil, err
	}
	observability.RecordCartOperation(ctx, "add", "success")
	return item, nil
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		observability.RecordCartOperation(ctx, "update", "bad_request")
		return nil, ErrCartInvalidQuantity
	}
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		observability.RecordCartOperation(ctx, "update", cartOutcome(err))
		return nil, err
	}
	item, err := s.carts.UpdateItemQuantity(cart.ID, productID, quantity)
	if err != nil {
		observability.RecordCartOperation(ctx, "update", cartOutcome(err))
		return nil, err
	}
	observability.RecordCartOperation(ctx, "update", "success")
	return item, nil
}

func (s *CartServiceImpl) Remove(ctx context.Context, userID, productID uint) error {
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		observability.RecordCartOperation(ctx, "remove", cartOutcome(err))
		return err
	}
	if err := s.carts.RemoveItem(cart.ID, productID); err != nil {
		observability.RecordCartOperation(ctx, "remove", cartOutcome(err))
		return err
	}
	observability.RecordCartOperation(ctx, "remove", "success")
	return nil
}

func cartOutcome(err error) string {
	switch {
	case errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrCartItemNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}
