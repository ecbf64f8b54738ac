package limits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrLimitExceeded = errors.New("rate limit exceeded")

// RateLimiter enforces a fixed-window requests-per-minute cap per subject.
// Windows live in Redis so the limit holds across replicas. A nil limiter or
// a zero limit admits everything.
type RateLimiter struct {
	client            *redis.Client
	requestsPerMinute int
}

func NewRateLimiter(client *redis.Client, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{client: client, requestsPerMinute: requestsPerMinute}
}

// Allow admits or rejects one request for the subject within the current
// minute window.
func (l *RateLimiter) Allow(ctx context.Context, subject string) error {
	if l == nil || l.client == nil || l.requestsPerMinute <= 0 {
		return nil
	}

	window := time.Now().UTC().Unix() / 60
	key := fmt.Sprintf("rpm:%s:%d", subject, window)

	cnt, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("rate limit check: %w", err)
	}
	if cnt == 1 {
		l.client.Expire(ctx, key, time.Minute)
	}
	if int(cnt) > l.requestsPerMinute {
		return ErrLimitExceeded
	}
	return nil
}
