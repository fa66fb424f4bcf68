package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Queue       QueueConfig       `mapstructure:"queue"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Affiliate   AffiliateConfig   `mapstructure:"affiliate"`
	Fallback    FallbackConfig    `mapstructure:"fallback"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// HuggingFaceConfig holds settings for the hosted chat-completion endpoint.
// MaxAttempts is the total attempt budget against the endpoint, including
// the first call; RetryWait grows per attempt up to RetryMaxWait.
type HuggingFaceConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	RetryWait    time.Duration `mapstructure:"retry_wait"`
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait"`
}

// QueueConfig holds the upstream request queue settings. One worker keeps a
// single inference request in flight at a time.
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// CacheConfig holds response-cache settings. Backend is "memory" or "redis".
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds inbound rate limit settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AffiliateConfig points at the product-link file and carries the per-region
// affiliate tags appended to outgoing links.
type AffiliateConfig struct {
	LinksPath string `mapstructure:"links_path"`
	TagUK     string `mapstructure:"tag_uk"`
	TagES     string `mapstructure:"tag_es"`
}

// Tags returns the region to affiliate-tag mapping, skipping empty tags.
func (c AffiliateConfig) Tags() map[string]string {
	tags := make(map[string]string, 2)
	if c.TagUK != "" {
		tags["uk"] = c.TagUK
	}
	if c.TagES != "" {
		tags["es"] = c.TagES
	}
	return tags
}

// FallbackConfig controls the offline recipe dataset used after retries are
// exhausted.
type FallbackConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig loads configuration from the environment and an optional .env
// file. A missing .env is fine; the environment alone may be complete.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("huggingface.api_key", "HF_API_KEY")
	viper.BindEnv("huggingface.model", "HF_MODEL_REPO")
	viper.BindEnv("huggingface.base_url", "HF_BASE_URL")
	viper.BindEnv("huggingface.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("huggingface.max_attempts", "HF_MAX_ATTEMPTS")
	viper.BindEnv("huggingface.retry_wait", "HF_RETRY_WAIT")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("affiliate.links_path", "AFFILIATE_LINKS_PATH")
	viper.BindEnv("affiliate.tag_uk", "AFFILIATE_TAG_UK")
	viper.BindEnv("affiliate.tag_es", "AFFILIATE_TAG_ES")
	viper.BindEnv("fallback.enabled", "FALLBACK_ENABLED")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Logger is not initialized yet at this point.
	fmt.Println("Loading configuration",
		"hf_api_key:", maskAPIKey(viper.GetString("huggingface.api_key")),
		"hf_model:", viper.GetString("huggingface.model"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey keeps only the first and last 4 characters of the key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "singlu")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("huggingface.model", "HuggingFaceH4/zephyr-7b-beta:featherless-ai")
	viper.SetDefault("huggingface.base_url", "https://router.huggingface.co/v1")
	viper.SetDefault("huggingface.max_tokens", 1000)
	viper.SetDefault("huggingface.timeout", "60s")
	viper.SetDefault("huggingface.max_attempts", 3)
	viper.SetDefault("huggingface.retry_wait", "2s")
	viper.SetDefault("huggingface.retry_max_wait", "10s")

	viper.SetDefault("queue.workers", 1)
	viper.SetDefault("queue.max_size", 100)

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("affiliate.links_path", "configs/affiliate_links.json")

	viper.SetDefault("fallback.enabled", true)

	viper.SetDefault("dedup_window", "1s")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.HuggingFace.MaxAttempts <= 0 {
		return fmt.Errorf("invalid huggingface max attempts")
	}
	if config.HuggingFace.Timeout <= 0 {
		return fmt.Errorf("invalid huggingface timeout")
	}

	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend: %s", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
