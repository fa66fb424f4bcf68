package cache

import (
	"context"
	"fmt"

	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "singlu:recipe:"

// RedisStore is the redis cache backend for sharing the response cache
// across instances.
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("redis cache initialized",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the cached value for the prompt, or an error on miss.
func (s *RedisStore) Get(ctx context.Context, prompt string) (string, error) {
	key := redisKeyPrefix + hashPrompt(prompt)

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", fmt.Errorf("cache miss")
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// Set stores the value under the prompt key with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, prompt, value string) error {
	key := redisKeyPrefix + hashPrompt(prompt)

	if err := s.client.Set(ctx, key, value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close closes the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
