package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store is a minimal key-value surface with expiry. Implementations must
// treat the cache as an optimization: callers never depend on a Set landing.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ListKey is the cache key for an entity's full list ("list:<entity>").
func ListKey(entity string) string {
	return "list:" + entity
}

// ItemKey is the cache key for a single entity row ("item:<entity>:<id>").
func ItemKey(entity string, id uint) string {
	return fmt.Sprintf("item:%s:%d", entity, id)
}

type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (s *NoopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (s *NoopStore) Delete(context.Context, ...string) error { return nil }

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used in tests and redis-less
// development environments.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.store[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.store, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), entry.payload...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[key] = memoryEntry{
		payload:   append([]byte(nil), value...),
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.store, key)
	}
	return nil
}
