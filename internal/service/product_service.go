package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
	"github.com/propmart/catalog-backend/internal/repository"
)

var (
	ErrProductInvalidName     = errors.New("name must be between 1 and 255 characters")
	ErrProductInvalidCategory = errors.New("category must be residential or commercial")
	ErrProductInvalidPrice    = errors.New("price must be greater than 0")
	ErrProductInvalidRating   = errors.New("rating must be between 0 and 5")
	ErrProductInvalidQuantity = errors.New("quantity must be >= 0")
	ErrProductNoUpdates       = errors.New("no updates provided")
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	Rating      float64
	Quantity    int
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Brand       *string
	Rating      *float64
	Quantity    *int
}

type ProductServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo}
}

func (s *ProductServiceImpl) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 1 || len(name) > 255 {
		return nil, ErrProductInvalidName
	}
	if !domain.ValidCategory(input.Category) {
		return nil, ErrProductInvalidCategory
	}
	if !input.Price.IsPositive() {
		return nil, ErrProductInvalidPrice
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrProductInvalidRating
	}
	if input.Quantity < 0 {
		return nil, ErrProductInvalidQuantity
	}

	product := &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    domain.ProductCategory(input.Category),
		Brand:       strings.TrimSpace(input.Brand),
		Rating:      input.Rating,
		Quantity:    input.Quantity,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(id)
}

// Search runs the filtered, sorted catalog query. sortBy is the raw client
// request; anything outside the allow-list fails here before touching the
// database.
func (s *ProductServiceImpl) Search(ctx context.Context, filter repository.ProductFilter, sortBy string, page repository.LimitOffset) (repository.Page[domain.Product], error) {
	start := time.Now()

	resolved, err := repository.ResolveProductSort(sortBy)
	if err != nil {
		observability.RecordSearchDuration(ctx, "bad_request", time.Since(start))
		return repository.Page[domain.Product]{}, err
	}

	result, err := s.repo.Search(filter, resolved, page)
	if err != nil {
		observability.RecordSearchDuration(ctx, "error", time.Since(start))
		return repository.Page[domain.Product]{}, err
	}
	observability.RecordSearchDuration(ctx, "success", time.Since(start))
	return result, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, id uint, input UpdateProductInput) (*domain.Product, error) {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 1 || len(name) > 255 {
			return nil, ErrProductInvalidName
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, ErrProductInvalidPrice
		}
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, ErrProductInvalidCategory
		}
		updates["category"] = *input.Category
	}
	if input.Brand != nil {
		updates["brand"] = strings.TrimSpace(*input.Brand)
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, ErrProductInvalidRating
		}
		updates["rating"] = *input.Rating
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, ErrProductInvalidQuantity
		}
		updates["quantity"] = *input.Quantity
	}
	if len(updates) == 0 {
		return nil, ErrProductNoUpdates
	}

	if err := s.repo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(id)
}
