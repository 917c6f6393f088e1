package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the subset of the redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter is a fixed-window request counter shared across server
// instances through redis.
type RateLimiter struct {
	store  Counter
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRateLimiter(store Counter, limit int, window time.Duration, prefix string) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

// Allow counts one request for key in the current window and reports whether
// it is within the limit. A nil limiter or non-positive limit allows everything.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r == nil || r.store == nil || r.limit <= 0 {
		return true, nil
	}

	bucket := r.now().UTC().Truncate(r.window).Unix()
	redisKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, bucket)

	count, err := r.store.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := r.store.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(r.limit), nil
}

func (r *RateLimiter) Limit() int {
	if r == nil {
		return 0
	}
	return r.limit
}
