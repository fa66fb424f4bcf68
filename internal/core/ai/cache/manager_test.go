package cache

import (
	"context"
	"testing"
	"time"

	"singlu/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(memoryConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt a", "recipe a"))

	value, err := m.Get(ctx, "prompt a")
	require.NoError(t, err)
	assert.Equal(t, "recipe a", value)

	_, err = m.Get(ctx, "prompt b")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(memoryConfig(10, 10*time.Millisecond))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "value"))

	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "prompt")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(memoryConfig(2, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// Touch "a" so "b" is the LRU victim.
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "b")
	assert.Error(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(memoryConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	m.Get(ctx, "a")
	m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(memoryConfig(10, time.Minute))
	require.NoError(t, err)
	require.NotNil(t, store)
	store.Close()

	disabled := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	store, err = New(disabled)
	require.NoError(t, err)
	assert.Nil(t, store)

	bad := memoryConfig(10, time.Minute)
	bad.Cache.Backend = "memcached"
	_, err = New(bad)
	assert.Error(t, err)
}
