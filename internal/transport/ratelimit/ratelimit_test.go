package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_AllowsCapacityThenRefills(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	defer l.Stop()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other clients have their own bucket")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestMemoryLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	defer l.Stop()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "10.0.0.1")
	now = now.Add(2 * time.Hour)
	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.clients)
}

func TestMemoryLimiter_StopIsIdempotent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func TestRedisLimiter_Allow(t *testing.T) {
	counter := new(mockCounter)
	counter.On("IncrWindow", mock.Anything, "ratelimit:10.0.0.1", time.Minute).Return(int64(3), nil).Once()
	counter.On("IncrWindow", mock.Anything, "ratelimit:10.0.0.1", time.Minute).Return(int64(4), nil).Once()

	l := NewRedisLimiter(counter, 3, time.Minute)

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	counter.AssertExpectations(t)
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		limiter  *stubLimiter
		expected int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, expected: http.StatusOK},
		{name: "denied", limiter: &stubLimiter{allowed: false}, expected: http.StatusTooManyRequests},
		{name: "limiter error fails open", limiter: &stubLimiter{err: errors.New("redis down")}, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "192.0.2.10:51234"
			w := httptest.NewRecorder()

			Middleware(tt.limiter)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
			assert.Equal(t, []string{"192.0.2.10"}, tt.limiter.keys)
		})
	}
}
