// Package config loads environment configuration for the commute learning service.
package config

import (
	"commute-learning-service/internal/platform/db"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	KVBackendSQL    = "sql"
	KVBackendRedis  = "redis"
	KVBackendMemory = "memory"
)

// Config holds all configuration for the API server and the CLI.
type Config struct {
	// Server
	Port string

	// Database
	DBDriver    string
	DBPath      string
	DatabaseURL string

	// Saved-route storage
	KVBackend     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Catalog seed file (JSON or YAML); empty keeps the stored or built-in catalog
	CatalogPath string

	// Notion
	NotionAPIKey     string
	NotionRatePerSec float64

	// Directions
	GoogleMapsAPIKey string
	KakaoRESTAPIKey  string
	RouteCacheTTL    time.Duration

	// Aggregation
	ExternalFetchTimeout     time.Duration
	ExternalFetchConcurrency int

	// Budgets
	DefaultMinutes int
	MinMinutes     int
	MaxMinutes     int

	// Timeouts
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables with defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port: Get("PORT", "8080"),

		DBDriver:    strings.ToLower(Get("DB_DRIVER", db.DriverSQLite)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		KVBackend:     strings.ToLower(Get("KV_BACKEND", KVBackendSQL)),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		RedisPrefix:   Get("REDIS_PREFIX", "commute:"),

		CatalogPath: os.Getenv("CATALOG_PATH"),

		NotionAPIKey:     os.Getenv("NOTION_API_KEY"),
		NotionRatePerSec: envFloat("NOTION_RATE_PER_SEC", 3),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		KakaoRESTAPIKey:  os.Getenv("KAKAO_REST_API_KEY"),
		RouteCacheTTL:    envDuration("ROUTE_CACHE_TTL", 30*time.Minute),

		ExternalFetchTimeout:     envDuration("EXTERNAL_FETCH_TIMEOUT", 8*time.Second),
		ExternalFetchConcurrency: envInt("EXTERNAL_FETCH_CONCURRENCY", 5),

		DefaultMinutes: envInt("DEFAULT_MINUTES", 25),
		MinMinutes:     envInt("MIN_MINUTES", 10),
		MaxMinutes:     envInt("MAX_MINUTES", 90),

		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Route-pack requests wait on external fetches.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case db.DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("config: DB_PATH is required for DB_DRIVER=%s", c.DBDriver)
		}
	case db.DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for DB_DRIVER=%s", c.DBDriver)
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}

	switch c.KVBackend {
	case KVBackendSQL, KVBackendRedis, KVBackendMemory:
	default:
		return fmt.Errorf("config: unknown KV_BACKEND %q", c.KVBackend)
	}

	if c.DefaultMinutes <= 0 {
		return fmt.Errorf("config: DEFAULT_MINUTES must be positive (got %d)", c.DefaultMinutes)
	}
	if c.MinMinutes <= 0 || c.MinMinutes > c.MaxMinutes {
		return fmt.Errorf("config: MIN_MINUTES=%d MAX_MINUTES=%d is not a valid range", c.MinMinutes, c.MaxMinutes)
	}
	if c.ExternalFetchConcurrency < 1 {
		return fmt.Errorf("config: EXTERNAL_FETCH_CONCURRENCY must be at least 1 (got %d)", c.ExternalFetchConcurrency)
	}

	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == db.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
