// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, storage, cache, auth, logging and the client

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Storage selects where content items are persisted
	Storage StorageConfig

	// Cache contains cache configuration for idempotency records
	Cache CacheConfig

	// Auth contains bearer token verification settings
	Auth AuthConfig

	// Log contains logger settings
	Log LogConfig

	// Client contains settings for the planner client and CLI
	Client ClientConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// AllowedOrigins lists the CORS origins; empty allows any origin
	AllowedOrigins []string

	// RateLimitPerSecond is the sustained request rate per client IP
	RateLimitPerSecond float64

	// RateLimitBurst is the bucket size per client IP
	RateLimitBurst int

	// PublicMetrics serves /metrics without a session, for scrapers
	// that cannot send a bearer token
	PublicMetrics bool
}

// StorageConfig holds repository configuration
type StorageConfig struct {
	// Type specifies the repository backend (sqlite/memory)
	Type string

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int
}

// AuthConfig holds JWT settings. An empty JWTSecret disables verification
// and every request runs as the dev caller.
type AuthConfig struct {
	JWTSecret string
	DevUserID string
	DevRole   string
}

// LogConfig holds logger settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File enables rotated file output when set
	File string

	// MaxSizeMB is the size at which the log file rotates
	MaxSizeMB int
}

// ClientConfig holds settings for talking to the persistence service
type ClientConfig struct {
	// BaseURL is the persistence service origin
	BaseURL string

	// Token is the bearer token sent with every request
	Token string

	// Timeout bounds every request
	Timeout time.Duration

	// BreakerFailures is the number of consecutive failures that open the
	// circuit breaker; 0 disables it
	BreakerFailures int
}

// LoadFromEnv loads configuration from environment variables. A .env file
// in the working directory is read first; real environment values win.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvOrDefault("PORT", "8000"),
			AllowedOrigins:     getEnvAsListOrDefault("ALLOWED_ORIGINS", nil),
			RateLimitPerSecond: getEnvAsFloatOrDefault("RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getEnvAsIntOrDefault("RATE_LIMIT_BURST", 20),
			PublicMetrics:      getEnvAsBoolOrDefault("METRICS_PUBLIC", false),
		},
		Storage: StorageConfig{
			Type:       getEnvOrDefault("STORAGE_TYPE", "sqlite"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "content.db"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				CleanupInterval: getEnvAsIntOrDefault("MEMORY_CACHE_CLEANUP", 600),
			},
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
			DevUserID: getEnvOrDefault("DEV_USER_ID", "local"),
			DevRole:   getEnvOrDefault("DEV_ROLE", "admin"),
		},
		Log: LogConfig{
			Level:     getEnvOrDefault("LOG_LEVEL", "info"),
			Format:    getEnvOrDefault("LOG_FORMAT", "json"),
			File:      getEnvOrDefault("LOG_FILE", ""),
			MaxSizeMB: getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 50),
		},
		Client: ClientConfig{
			BaseURL:         getEnvOrDefault("PLANNER_URL", "http://localhost:8000"),
			Token:           getEnvOrDefault("PLANNER_TOKEN", ""),
			Timeout:         time.Duration(getEnvAsIntOrDefault("PLANNER_TIMEOUT", 15)) * time.Second,
			BreakerFailures: getEnvAsIntOrDefault("PLANNER_BREAKER_FAILURES", 5),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable, dropping blanks
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimitPerSecond <= 0 || c.Server.RateLimitBurst < 1 {
		return errors.New("rate limit must be positive")
	}

	if c.Storage.Type != "sqlite" && c.Storage.Type != "memory" {
		return errors.New("storage type must be 'sqlite' or 'memory'")
	}

	if c.Storage.Type == "sqlite" && c.Storage.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using sqlite storage")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Auth.JWTSecret == "" && c.Auth.DevUserID == "" {
		return errors.New("dev user id is required when JWT_SECRET is unset")
	}

	if c.Auth.DevRole != "admin" && c.Auth.DevRole != "standard" {
		return errors.New("dev role must be 'admin' or 'standard'")
	}

	return nil
}
