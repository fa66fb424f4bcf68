package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"
)

// Store caches completion text keyed by prompt.
type Store interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt, value string) error
	Close() error
}

// New selects a cache backend from config. A disabled cache returns nil;
// callers treat a nil store as a pass-through.
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return NewManager(cfg), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// hashPrompt derives the cache key from the normalized prompt.
func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
