package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	CORSOrigins []string

	Aggregator AggregatorConfig
	Sync       SyncConfig
	Cascade    CascadeConfig
}

type AggregatorConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type SyncConfig struct {
	PageSize    int
	Concurrency int
}

type CascadeConfig struct {
	Driver        string
	MatcherURL    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
	KafkaBrokers  []string
	KafkaTopic    string
}

// Load reads the environment, after an optional .env file. Aggregator
// credentials are checked at the start of each sync run, not here.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		Aggregator: AggregatorConfig{
			BaseURL:      getEnv("AGGREGATOR_BASE_URL", ""),
			ClientID:     getEnv("AGGREGATOR_CLIENT_ID", ""),
			ClientSecret: getEnv("AGGREGATOR_CLIENT_SECRET", ""),
		},
		Cascade: CascadeConfig{
			Driver:        strings.ToLower(getEnv("CASCADE_DRIVER", "none")),
			MatcherURL:    getEnv("MATCHER_URL", ""),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisChannel:  getEnv("REDIS_CHANNEL", "banksync.transactions"),
			KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "")),
			KafkaTopic:    getEnv("KAFKA_TOPIC", "banksync.transactions"),
		},
	}

	var err error
	if cfg.Aggregator.Timeout, err = getDuration("AGGREGATOR_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Sync.PageSize, err = getInt("SYNC_PAGE_SIZE", 500); err != nil {
		return Config{}, err
	}
	if cfg.Sync.Concurrency, err = getInt("SYNC_CONCURRENCY", 1); err != nil {
		return Config{}, err
	}
	if cfg.Cascade.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	if cfg.Sync.PageSize < 1 || cfg.Sync.PageSize > 500 {
		return Config{}, fmt.Errorf("SYNC_PAGE_SIZE must be between 1 and 500, got %d", cfg.Sync.PageSize)
	}
	if cfg.Sync.Concurrency < 1 {
		return Config{}, fmt.Errorf("SYNC_CONCURRENCY must be at least 1, got %d", cfg.Sync.Concurrency)
	}

	return cfg, nil
}

// RequireDatabase is used by commands that touch storage.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
