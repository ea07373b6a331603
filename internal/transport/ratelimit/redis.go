package ratelimit

import (
	"context"
	"time"
)

// Counter is satisfied by clients.RedisClient.
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisLimiter shares a fixed-window count across every instance of the
// service.
type RedisLimiter struct {
	counter  Counter
	capacity int64
	window   time.Duration
}

func NewRedisLimiter(counter Counter, capacity int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{counter: counter, capacity: int64(capacity), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.counter.IncrWindow(ctx, "ratelimit:"+key, l.window)
	if err != nil {
		return false, err
	}
	return n <= l.capacity, nil
}
