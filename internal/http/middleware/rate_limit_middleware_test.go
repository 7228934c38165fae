package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLocalLimiterEnforcesWindow(t *testing.T) {
	rl := NewRateLimiter(NewLocalFixedWindowLimiter(), 2, time.Minute, FailClosed, "test")
	h := rl.Middleware()(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on a rejected request")
	}
}

func TestLocalLimiterKeysByClientIP(t *testing.T) {
	rl := NewRateLimiter(NewLocalFixedWindowLimiter(), 1, time.Minute, FailClosed, "test")
	h := rl.Middleware()(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for first client, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different client, got %d", rec.Code)
	}
}

func TestRedisLimiterSharesBudget(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisFixedWindowLimiter(client, "rl-test")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d failed: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d should be inside the budget", i+1)
		}
	}
	allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if allowed {
		t.Fatal("fourth request must be rejected")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRedisLimiterWindowResets(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisFixedWindowLimiter(client, "rl-test")
	ctx := context.Background()

	if allowed, _, _ := limiter.Allow(ctx, "k", 1, time.Minute); !allowed {
		t.Fatal("first request must be allowed")
	}
	if allowed, _, _ := limiter.Allow(ctx, "k", 1, time.Minute); allowed {
		t.Fatal("second request must be rejected")
	}
	srv.FastForward(61 * time.Second)
	if allowed, _, _ := limiter.Allow(ctx, "k", 1, time.Minute); !allowed {
		t.Fatal("request after window expiry must be allowed")
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string, int, time.Duration) (bool, time.Duration, error) {
	return false, 0, errors.New("backend down")
}

func TestFailureModes(t *testing.T) {
	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		return r
	}

	open := NewRateLimiter(brokenLimiter{}, 1, time.Minute, FailOpen, "test").Middleware()(okHandler())
	rec := httptest.NewRecorder()
	open.ServeHTTP(rec, req())
	if rec.Code != http.StatusOK {
		t.Fatalf("fail-open must allow, got %d", rec.Code)
	}

	closed := NewRateLimiter(brokenLimiter{}, 1, time.Minute, FailClosed, "test").Middleware()(okHandler())
	rec = httptest.NewRecorder()
	closed.ServeHTTP(rec, req())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("fail-closed must reject, got %d", rec.Code)
	}
}
