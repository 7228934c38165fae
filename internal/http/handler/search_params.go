package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propmart/catalog-backend/internal/repository"
)

// parseProductFilter reads the search query parameters into a typed filter.
// Every malformed parameter lands in fieldErrors under its query name; an
// empty map means the filter is usable.
func parseProductFilter(r *http.Request) (repository.ProductFilter, map[string]string) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}
	fieldErrors := map[string]string{}

	if raw := q.Get("rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors["rating"] = "must be a number"
		} else {
			filter.Rating = &v
		}
	}
	filter.MinPrice = parseDecimalParam(q.Get("min_price"), "min_price", fieldErrors)
	filter.MaxPrice = parseDecimalParam(q.Get("max_price"), "max_price", fieldErrors)
	filter.MinQuantity = parseIntParam(q.Get("min_quantity"), "min_quantity", fieldErrors)
	filter.MaxQuantity = parseIntParam(q.Get("max_quantity"), "max_quantity", fieldErrors)

	if raw := q.Get("created_at"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			fieldErrors["created_at"] = "must be a date in YYYY-MM-DD form"
		} else {
			filter.CreatedAt = &day
		}
	}
	return filter, fieldErrors
}

func parseDecimalParam(raw, field string, fieldErrors map[string]string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		fieldErrors[field] = "must be a decimal number"
		return nil
	}
	return &v
}

func parseIntParam(raw, field string, fieldErrors map[string]string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrors[field] = "must be an integer"
		return nil
	}
	return &v
}
