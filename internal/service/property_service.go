package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/propmart/catalog-backend/internal/cache"
	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/repository"
)

var (
	ErrPropertyInvalidContent = errors.New("content must not be empty")
	ErrPropertyNoUpdates      = errors.New("no updates provided")
)

const propertyCacheEntity = "property"

type CreatePropertyInput struct {
	OwnerID  uint
	Content  string
	Priority string
	Flag     string
}

type UpdatePropertyInput struct {
	Content  *string
	Priority *string
	Flag     *string
}

// PropertyServiceImpl serves reads through the cache frontend and invalidates
// on every write. The list and item entries carry separate TTLs so the cheap,
// frequently hit listing stays fresher than individual records.
type PropertyServiceImpl struct {
	repo     repository.PropertyRepository
	frontend *cache.Frontend
	listTTL  time.Duration
	itemTTL  time.Duration
	now      func() time.Time
}

func NewPropertyService(repo repository.PropertyRepository, frontend *cache.Frontend, listTTL, itemTTL time.Duration) *PropertyServiceImpl {
	return &PropertyServiceImpl{
		repo:     repo,
		frontend: frontend,
		listTTL:  listTTL,
		itemTTL:  itemTTL,
		now:      time.Now,
	}
}

func (s *PropertyServiceImpl) List(ctx context.Context) ([]domain.Property, error) {
	return cache.GetOrCompute(ctx, s.frontend, cache.ListKey(propertyCacheEntity), s.listTTL, func(ctx context.Context) ([]domain.Property, error) {
		return s.repo.List()
	})
}

func (s *PropertyServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Property, error) {
	return cache.GetOrCompute(ctx, s.frontend, cache.ItemKey(propertyCacheEntity, id), s.itemTTL, func(ctx context.Context) (*domain.Property, error) {
		return s.repo.FindByID(id)
	})
}

// Create stamps ExpireDate with the creation time. New records therefore start
// already outside any forward-looking expiry window; see the note on
// domain.Property.
func (s *PropertyServiceImpl) Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrPropertyInvalidContent
	}

	now := s.now().UTC()
	property := &domain.Property{
		OwnerID:    input.OwnerID,
		Content:    content,
		Priority:   strings.TrimSpace(input.Priority),
		Flag:       strings.TrimSpace(input.Flag),
		CreatedAt:  now,
		ExpireDate: now,
	}
	if err := s.repo.Create(property); err != nil {
		return nil, err
	}
	s.frontend.Invalidate(ctx, cache.ListKey(propertyCacheEntity))
	return property, nil
}

func (s *PropertyServiceImpl) Update(ctx context.Context, id uint, input UpdatePropertyInput) (*domain.Property, error) {
	updates := map[string]any{}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, ErrPropertyInvalidContent
		}
		updates["content"] = content
	}
	if input.Priority != nil {
		updates["priority"] = strings.TrimSpace(*input.Priority)
	}
	if input.Flag != nil {
		updates["flag"] = strings.TrimSpace(*input.Flag)
	}
	if len(updates) == 0 {
		return nil, ErrPropertyNoUpdates
	}

	if err := s.repo.Update(id, updates); err != nil {
		return nil, err
	}
	s.frontend.Invalidate(ctx, cache.ListKey(propertyCacheEntity), cache.ItemKey(propertyCacheEntity, id))
	return s.repo.FindByID(id)
}

func (s *PropertyServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteByID(id); err != nil {
		return err
	}
	s.frontend.Invalidate(ctx, cache.ListKey(propertyCacheEntity), cache.ItemKey(propertyCacheEntity, id))
	return nil
}

// DueToday lists records expiring within the current UTC day.
func (s *PropertyServiceImpl) DueToday(ctx context.Context) ([]domain.Property, error) {
	start := startOfDayUTC(s.now())
	return s.repo.ExpiringBetween(start, start.Add(24*time.Hour))
}

// DueNext7Days lists records expiring between the start of today and seven
// days out.
func (s *PropertyServiceImpl) DueNext7Days(ctx context.Context) ([]domain.Property, error) {
	start := startOfDayUTC(s.now())
	return s.repo.ExpiringBetween(start, start.Add(7*24*time.Hour))
}

func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
