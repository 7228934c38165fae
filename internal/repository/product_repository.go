package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(id uint) (*domain.Product, error)
	Search(filter ProductFilter, sortBy string, page LimitOffset) (Page[domain.Product], error)
	Update(id uint, updates map[string]any) error
	DeleteByID(id uint) error
}

type GormProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "create", "success")
	return nil
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "success")
	return &product, nil
}

// Search applies the filter and a pre-validated sort column. sortBy must
// come from ResolveProductSort; it is interpolated into the ORDER BY clause.
func (r *GormProductRepository) Search(filter ProductFilter, sortBy string, page LimitOffset) (Page[domain.Product], error) {
	normalized := normalizeLimitOffset(page)
	result := Page[domain.Product]{
		Limit:  normalized.Limit,
		Offset: normalized.Offset,
	}

	base := filter.Apply(r.db.Model(&domain.Product{}))
	if err := base.Count(&result.Count).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "search", "error")
		return Page[domain.Product]{}, err
	}
	if err := base.Order(sortBy + " asc").
		Offset(normalized.Offset).
		Limit(normalized.Limit).
		Find(&result.Items).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "search", "error")
		return Page[domain.Product]{}, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "search", "success")
	return result, nil
}

func (r *GormProductRepository) Update(id uint, updates map[string]any) error {
	res := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "update", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "update", "success")
	return nil
}

func (r *GormProductRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&domain.Product{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "success")
	return nil
}
