package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Feed    FeedConfig
	Catalog CatalogConfig
	API     APIConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

// FeedConfig points at the alert feed. Source is "embedded", a file path,
// or an http(s) URL. ExpirySchedule "off" disables the expiry sweep.
type FeedConfig struct {
	Enabled        bool
	Source         string
	PollInterval   time.Duration
	ExpirySchedule string
}

// CatalogConfig.Path overrides the bundled location catalog when set.
type CatalogConfig struct {
	Path string
}

type APIConfig struct {
	RateLimit    int
	SuggestLimit int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 1),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Feed: FeedConfig{
			Enabled:        getEnvBool("FEED_ENABLED", true),
			Source:         getEnv("FEED_SOURCE", "embedded"),
			PollInterval:   getEnvDuration("FEED_POLL_INTERVAL", 5*time.Minute),
			ExpirySchedule: getEnv("FEED_EXPIRY_SCHEDULE", "@every 1m"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		API: APIConfig{
			RateLimit:    getEnvInt("API_RATE_LIMIT", 10),
			SuggestLimit: getEnvInt("API_SUGGEST_LIMIT", 3),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/weather-alerts.db"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	if cfg.Feed.ExpirySchedule == "off" {
		cfg.Feed.ExpirySchedule = ""
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be positive, got %d", c.Worker.Count)
	}
	if c.Worker.BufferSize < 0 {
		return fmt.Errorf("worker buffer size must not be negative, got %d", c.Worker.BufferSize)
	}

	if c.Feed.Enabled {
		if c.Feed.Source == "" {
			return fmt.Errorf("feed source is required when the feed is enabled")
		}
		if c.Feed.PollInterval < time.Second {
			return fmt.Errorf("feed poll interval must be at least 1 second")
		}
	}

	if c.Feed.ExpirySchedule != "" {
		if _, err := cron.ParseStandard(c.Feed.ExpirySchedule); err != nil {
			return fmt.Errorf("invalid expiry schedule %q: %w", c.Feed.ExpirySchedule, err)
		}
	}

	if c.API.RateLimit < 1 {
		return fmt.Errorf("API rate limit must be positive, got %d", c.API.RateLimit)
	}
	if c.API.SuggestLimit < 1 {
		return fmt.Errorf("suggestion limit must be positive, got %d", c.API.SuggestLimit)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
