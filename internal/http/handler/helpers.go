package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/propmart/catalog-backend/internal/repository"
)

func parsePathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

// parseLimitOffset reads the limit/offset query parameters. Absent or
// malformed values fall back to the defaults rather than failing the request.
func parseLimitOffset(r *http.Request) repository.LimitOffset {
	q := r.URL.Query()
	page := repository.LimitOffset{}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		page.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		page.Offset = v
	}
	return page
}

type paginatedEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// paginated builds the count/next/previous/results envelope. next and
// previous are full request URLs with adjusted offsets, null at either end of
// the result set.
func paginated[T any](r *http.Request, page repository.Page[T]) paginatedEnvelope {
	env := paginatedEnvelope{Count: page.Count, Results: page.Items}
	if page.Items == nil {
		env.Results = []T{}
	}

	limit := page.Limit
	if limit < 1 {
		limit = repository.DefaultLimit
	}

	if int64(page.Offset+limit) < page.Count {
		env.Next = pageURL(r, limit, page.Offset+limit)
	}
	if page.Offset > 0 {
		prev := page.Offset - limit
		if prev < 0 {
			prev = 0
		}
		env.Previous = pageURL(r, limit, prev)
	}
	return env
}

func pageURL(r *http.Request, limit, offset int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	full := scheme + "://" + r.Host + u.String()
	return &full
}
