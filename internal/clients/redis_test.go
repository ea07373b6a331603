package clients

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore answers INCR and EXPIRE from memory through a go-redis hook,
// so no server is dialled.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]int64
	ttls   map[string]time.Duration
	execs  int
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (s *memoryStore) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		s.apply(cmd)
		return cmd.Err()
	}
}

func (s *memoryStore) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		if s.err != nil {
			return s.err
		}
		for _, cmd := range cmds {
			s.apply(cmd)
		}
		return nil
	}
}

func (s *memoryStore) apply(cmd goredis.Cmder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	args := cmd.Args()
	switch cmd.Name() {
	case "exec":
		s.execs++
	case "incr":
		key := args[1].(string)
		s.values[key]++
		cmd.(*goredis.IntCmd).SetVal(s.values[key])
	case "expire":
		key := args[1].(string)
		nx := len(args) > 3 && args[3] == "NX"
		if nx && s.ttls[key] > 0 {
			cmd.(*goredis.BoolCmd).SetVal(false)
			return
		}
		s.ttls[key] = time.Duration(args[2].(int64)) * time.Second
		cmd.(*goredis.BoolCmd).SetVal(true)
	}
}

func newTestRedisClient(t *testing.T, store *memoryStore) *RedisClient {
	t.Helper()
	raw := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	raw.AddHook(store)
	t.Cleanup(func() { _ = raw.Close() })
	return &RedisClient{raw: raw, prefix: "cotizador_"}
}

func TestIncrWindow_FirstHitStartsWindow(t *testing.T) {
	store := newMemoryStore()
	c := newTestRedisClient(t, store)

	n, err := c.IncrWindow(context.Background(), "ratelimit:10.0.0.1", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, store.ttls["cotizador_ratelimit:10.0.0.1"])
	assert.Equal(t, 1, store.execs, "incr and expire run in one transaction")
}

func TestIncrWindow_KeepsRunningWindow(t *testing.T) {
	store := newMemoryStore()
	store.values["cotizador_k"] = 4
	store.ttls["cotizador_k"] = 20 * time.Second
	c := newTestRedisClient(t, store)

	n, err := c.IncrWindow(context.Background(), "k", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(5), n)
	assert.Equal(t, 20*time.Second, store.ttls["cotizador_k"])
}

func TestIncrWindow_RestoresMissingExpiry(t *testing.T) {
	store := newMemoryStore()
	store.values["cotizador_k"] = 9
	c := newTestRedisClient(t, store)

	n, err := c.IncrWindow(context.Background(), "k", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(10), n)
	assert.Equal(t, time.Minute, store.ttls["cotizador_k"], "a counter without TTL must not live forever")
}

func TestIncrWindow_Error(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("i/o timeout")
	c := newTestRedisClient(t, store)

	_, err := c.IncrWindow(context.Background(), "k", time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
}
