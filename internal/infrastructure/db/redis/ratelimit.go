package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter provides fixed-window request counting backed by Redis.
// Key format: ratelimit:<scope>:<client>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow increments the counter for the given scope and client and reports
// whether the request fits inside the window's limit. The window expiry is
// set only when the counter is created, so the window is fixed rather than
// sliding.
func (l *RateLimiter) Allow(ctx context.Context, scope, client string, limit int64, window time.Duration) (bool, error) {
	key := l.key(scope, client)

	var count *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return count.Val() <= limit, nil
}

func (l *RateLimiter) key(scope, client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, client)
}
