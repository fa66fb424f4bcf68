package cache

import (
	"context"
	"testing"
	"time"

	"singlu/internal/infrastructure/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisConfig(addr string) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "redis",
			RedisAddr:       addr,
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Hour,
		},
	}
}

func TestRedisStoreSetGet(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(redisConfig(mr.Addr()))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "prompt", "recipe text"))

	value, err := store.Get(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recipe text", value)

	_, err = store.Get(ctx, "other prompt")
	assert.Error(t, err)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(redisConfig(mr.Addr()))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "prompt", "value"))

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "prompt")
	assert.Error(t, err)
}

func TestRedisStoreUnavailable(t *testing.T) {
	_, err := NewRedisStore(redisConfig("127.0.0.1:1"))
	assert.Error(t, err)
}
