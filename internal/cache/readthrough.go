package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/propmart/catalog-backend/internal/observability"
)

// Frontend wraps a Store with the read-through get-or-compute pattern. A
// broken or unreachable store degrades every lookup to a miss; reads never
// fail because of the cache.
type Frontend struct {
	store  Store
	logger *slog.Logger
}

func NewFrontend(store Store, logger *slog.Logger) *Frontend {
	if store == nil {
		store = NewNoopStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Frontend{store: store, logger: logger}
}

// Invalidate drops keys after a write. Store errors are logged and swallowed;
// a stale entry ages out by TTL at worst.
func (f *Frontend) Invalidate(ctx context.Context, keys ...string) {
	if err := f.store.Delete(ctx, keys...); err != nil {
		f.logger.WarnContext(ctx, "cache invalidate failed", "keys", keys, "error", err)
	}
}

// GetOrCompute returns the cached value under key when present, otherwise
// invokes compute, stores its result with ttl, and returns it. compute runs
// exactly once per cold key and not at all on a warm one.
func GetOrCompute[T any](ctx context.Context, f *Frontend, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	payload, ok, err := f.store.Get(ctx, key)
	switch {
	case err != nil:
		observability.RecordCacheLookup(ctx, key, "error")
		f.logger.WarnContext(ctx, "cache get failed, treating as miss", "key", key, "error", err)
	case ok:
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			observability.RecordCacheLookup(ctx, key, "hit")
			return cached, nil
		}
		observability.RecordCacheLookup(ctx, key, "decode_error")
		f.logger.WarnContext(ctx, "cache payload undecodable, recomputing", "key", key)
	default:
		observability.RecordCacheLookup(ctx, key, "miss")
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if encoded, err := json.Marshal(value); err == nil {
		if err := f.store.Set(ctx, key, encoded, ttl); err != nil {
			f.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
		}
	}
	return value, nil
}
