package repository

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// LimitOffset is the wire-level pagination request. Clients pass limit/offset
// query params; normalization clamps rather than rejects out-of-range limits.
type LimitOffset struct {
	Limit  int
	Offset int
}

type Page[T any] struct {
	Items  []T
	Count  int64
	Limit  int
	Offset int
}

func normalizeLimitOffset(in LimitOffset) LimitOffset {
	limit := in.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return LimitOffset{Limit: limit, Offset: offset}
}
