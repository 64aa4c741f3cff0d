package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter limits how many requests a key may make inside a window
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int64, resetTime time.Time, err error)
}

// RedisRateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE
type RedisRateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxRequests int64
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxRequests int64) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		window:      window,
		maxRequests: maxRequests,
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int64, time.Time, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limiter incr failed: %w", err)
	}

	// First hit in the window sets the expiry
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, 0, time.Time{}, fmt.Errorf("rate limiter expire failed: %w", err)
		}
	}

	ttl, err := r.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = r.window
	}
	resetTime := time.Now().Add(ttl)

	remaining := r.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= r.maxRequests, remaining, resetTime, nil
}
