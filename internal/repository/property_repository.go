package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository interface {
	Create(property *domain.Property) error
	FindByID(id uint) (*domain.Property, error)
	List() ([]domain.Property, error)
	ExpiringBetween(from, to time.Time) ([]domain.Property, error)
	Update(id uint, updates map[string]any) error
	DeleteByID(id uint) error
}

type GormPropertyRepository struct{ db *gorm.DB }

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) Create(property *domain.Property) error {
	if err := r.db.Create(property).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "property", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "create", "success")
	return nil
}

func (r *GormPropertyRepository) FindByID(id uint) (*domain.Property, error) {
	var property domain.Property
	if err := r.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "property", "find_by_id", "not_found")
			return nil, ErrPropertyNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "property", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "find_by_id", "success")
	return &property, nil
}

func (r *GormPropertyRepository) List() ([]domain.Property, error) {
	var properties []domain.Property
	if err := r.db.Order("created_at asc").Find(&properties).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "property", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "list", "success")
	return properties, nil
}

// ExpiringBetween returns properties whose expire_date lies in [from, to).
func (r *GormPropertyRepository) ExpiringBetween(from, to time.Time) ([]domain.Property, error) {
	var properties []domain.Property
	if err := r.db.Where("expire_date >= ? AND expire_date < ?", from, to).
		Order("expire_date asc").
		Find(&properties).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "property", "expiring_between", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "expiring_between", "success")
	return properties, nil
}

func (r *GormPropertyRepository) Update(id uint, updates map[string]any) error {
	res := r.db.Model(&domain.Property{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "property", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "property", "update", "not_found")
		return ErrPropertyNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "update", "success")
	return nil
}

func (r *GormPropertyRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&domain.Property{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "property", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "property", "delete_by_id", "not_found")
		return ErrPropertyNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "property", "delete_by_id", "success")
	return nil
}
