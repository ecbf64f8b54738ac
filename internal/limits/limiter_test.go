package limits

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, rpm int) (*RateLimiter, func()) {
	t.Helper()
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	limiter := NewRateLimiter(client, rpm)
	cleanup := func() {
		client.Close()
		server.Close()
	}
	return limiter, cleanup
}

func TestRateLimiterAllowEnforcesRPM(t *testing.T) {
	limiter, cleanup := newTestLimiter(t, 2)
	defer cleanup()

	ctx := context.Background()
	subject := "testuser"

	if err := limiter.Allow(ctx, subject); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}
	if err := limiter.Allow(ctx, subject); err != nil {
		t.Fatalf("second request should pass: %v", err)
	}
	if err := limiter.Allow(ctx, subject); err != ErrLimitExceeded {
		t.Fatalf("expected rpm limit error, got %v", err)
	}
}

func TestRateLimiterWindowsArePerSubject(t *testing.T) {
	limiter, cleanup := newTestLimiter(t, 1)
	defer cleanup()

	ctx := context.Background()
	if err := limiter.Allow(ctx, "alice"); err != nil {
		t.Fatalf("alice should pass: %v", err)
	}
	if err := limiter.Allow(ctx, "bob"); err != nil {
		t.Fatalf("bob has a separate window: %v", err)
	}
	if err := limiter.Allow(ctx, "alice"); err != ErrLimitExceeded {
		t.Fatalf("expected alice to be limited, got %v", err)
	}
}

func TestRateLimiterDisabledAdmitsEverything(t *testing.T) {
	limiter, cleanup := newTestLimiter(t, 0)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		if err := limiter.Allow(ctx, "testuser"); err != nil {
			t.Fatalf("disabled limiter rejected request %d: %v", i, err)
		}
	}

	var nilLimiter *RateLimiter
	if err := nilLimiter.Allow(ctx, "testuser"); err != nil {
		t.Fatalf("nil limiter should admit: %v", err)
	}
}
