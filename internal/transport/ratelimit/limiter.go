package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryLimiter gives every key capacity requests per window, refilled all
// at once when the window has passed.
type MemoryLimiter struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewMemoryLimiter(capacity int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		capacity:    capacity,
		window:      window,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, bucket := range l.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(l.clients, key)
		}
	}
}

func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, exists := l.clients[key]

	if !exists {
		l.clients[key] = &clientBucket{
			tokens:     l.capacity - 1,
			lastRefill: now,
		}
		return l.capacity > 0, nil
	}

	if now.Sub(bucket.lastRefill) >= l.window {
		bucket.tokens = l.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false, nil
	}

	bucket.tokens--
	return true, nil
}
