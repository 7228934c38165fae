package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidSortField signals a sort_by value outside the static allow-list.
var ErrInvalidSortField = errors.New("invalid sort_by field")

// ProductFilter carries the typed, already-validated search parameters.
// Zero/nil fields mean "no filter on this field" rather than "filter to empty".
type ProductFilter struct {
	Name        string
	Category    string
	Brand       string
	Rating      *float64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQuantity *int
	MaxQuantity *int
	CreatedAt   *time.Time
}

// filterRule narrows a query by one field when its parameter was supplied.
type filterRule func(tx *gorm.DB, f ProductFilter) *gorm.DB

// productFilterRules is the declarative parameter-to-comparison table for the
// product search surface. Range filters intentionally activate only when both
// bounds are present; a single bound is a no-op, matching the documented
// behavior of the endpoints this replaces.
var productFilterRules = []filterRule{
	containsFold("name", func(f ProductFilter) string { return f.Name }),
	equalsText("category", func(f ProductFilter) string { return f.Category }),
	equalsText("brand", func(f ProductFilter) string { return f.Brand }),
	equalsFloat("rating", func(f ProductFilter) *float64 { return f.Rating }),
	betweenDecimal("price",
		func(f ProductFilter) *decimal.Decimal { return f.MinPrice },
		func(f ProductFilter) *decimal.Decimal { return f.MaxPrice },
	),
	betweenInt("quantity",
		func(f ProductFilter) *int { return f.MinQuantity },
		func(f ProductFilter) *int { return f.MaxQuantity },
	),
	onDay("created_at", func(f ProductFilter) *time.Time { return f.CreatedAt }),
}

// Apply narrows tx by every rule whose parameter is present.
func (f ProductFilter) Apply(tx *gorm.DB) *gorm.DB {
	for _, rule := range productFilterRules {
		tx = rule(tx, f)
	}
	return tx
}

func equalsText(column string, get func(ProductFilter) string) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		if v := get(f); v != "" {
			return tx.Where(column+" = ?", v)
		}
		return tx
	}
}

func equalsFloat(column string, get func(ProductFilter) *float64) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		if v := get(f); v != nil {
			return tx.Where(column+" = ?", *v)
		}
		return tx
	}
}

func containsFold(column string, get func(ProductFilter) string) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		if v := get(f); v != "" {
			return tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(v)+"%")
		}
		return tx
	}
}

func betweenDecimal(column string, lo, hi func(ProductFilter) *decimal.Decimal) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		l, h := lo(f), hi(f)
		if l != nil && h != nil {
			return tx.Where(column+" BETWEEN ? AND ?", *l, *h)
		}
		return tx
	}
}

func betweenInt(column string, lo, hi func(ProductFilter) *int) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		l, h := lo(f), hi(f)
		if l != nil && h != nil {
			return tx.Where(column+" BETWEEN ? AND ?", *l, *h)
		}
		return tx
	}
}

// onDay matches at day granularity: [midnight, midnight+24h) in UTC.
func onDay(column string, get func(ProductFilter) *time.Time) filterRule {
	return func(tx *gorm.DB, f ProductFilter) *gorm.DB {
		v := get(f)
		if v == nil {
			return tx
		}
		day := v.UTC().Truncate(24 * time.Hour)
		return tx.Where(column+" >= ? AND "+column+" < ?", day, day.Add(24*time.Hour))
	}
}

// productSortFields is the complete set of client-sortable columns. Sort
// validation is a membership test against this list only; it must never fall
// back to probing the model for attributes of the requested name.
var productSortFields = map[string]struct{}{
	"name":       {},
	"category":   {},
	"brand":      {},
	"rating":     {},
	"price":      {},
	"quantity":   {},
	"created_at": {},
}

const defaultProductSort = "name"

// ResolveProductSort validates a requested sort key against the allow-list.
// An empty request resolves to the default ascending name ordering.
func ResolveProductSort(requested string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(requested))
	if key == "" {
		return defaultProductSort, nil
	}
	if _, ok := productSortFields[key]; !ok {
		return "", ErrInvalidSortField
	}
	return key, nil
}
