package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration, read from the
// environment. A .env file is loaded by the entry point before this
// runs.
type Config struct {
	Port          int
	Debug         bool
	Cache         CacheConfig
	Redis         RedisConfig
	DatabaseURL   string
	SourceURL     string
	FetchTimeout  time.Duration
	RetentionDays int
}

// CacheConfig selects the cache backend and freshness window.
// A TTL of zero or below disables caching entirely.
type CacheConfig struct {
	Backend string
	TTL     time.Duration
}

// RedisConfig represents the Redis connection, used when the cache
// backend is "redis".
type RedisConfig struct {
	Addr     string
	Password string
	Database int
}

// Load reads configuration from environment variables, applying
// defaults where unset. An empty DATABASE_URL disables the
// history/trend subsystem.
func Load() *Config {
	return &Config{
		Port:  getEnvInt("PORT", 8080),
		Debug: getEnv("DEBUG", "false") == "true",
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
			TTL:     time.Duration(getEnvInt("CACHE_TTL", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Database: getEnvInt("REDIS_DB", 0),
		},
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SourceURL:     getEnv("SOURCE_URL", ""),
		FetchTimeout:  time.Duration(getEnvInt("FETCH_TIMEOUT", 30)) * time.Second,
		RetentionDays: getEnvInt("RETENTION_DAYS", 90),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
