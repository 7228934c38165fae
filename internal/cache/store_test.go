package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "item:product:1", []byte(`{"id":1}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := store.Get(ctx, "item:product:1")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(got) != `{"id":1}` {
		t.Fatalf("unexpected payload %q", got)
	}

	if err := store.Delete(ctx, "item:product:1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "item:product:1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "list:product", []byte("[]"), time.Nanosecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := store.Get(ctx, "list:product"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "catalog")
	ctx := context.Background()

	if err := store.Set(ctx, "item:product:7", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !srv.Exists("catalog:item:product:7") {
		t.Fatal("expected prefixed key in redis")
	}

	got, ok, err := store.Get(ctx, "item:product:7")
	if err != nil || !ok || string(got) != "x" {
		t.Fatalf("round trip failed: got=%q ok=%v err=%v", got, ok, err)
	}

	if _, ok, err := store.Get(ctx, "item:product:404"); err != nil || ok {
		t.Fatalf("absent key must be a clean miss, ok=%v err=%v", ok, err)
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := ListKey("property"); got != "list:property" {
		t.Fatalf("unexpected list key %q", got)
	}
	if got := ItemKey("property", 12); got != "item:property:12" {
		t.Fatalf("unexpected item key %q", got)
	}
}
