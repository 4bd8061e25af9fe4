package app

import (
	"os"
	"strconv"
	"time"

	"github.com/custdesk/custdesk/pkg/cachex"
)

type Config struct {
	APIBaseURL string // Required: base URL of the customer API
	Channel    string // Optional: channel hint sent as Referer on API calls (default: https://web.custdesk.local)

	CacheBackend  string        // Optional: cache backend (memory, redis) (default: memory)
	CacheTTL      time.Duration // Optional: token and gate decision cache TTL (default: 60m)
	RedisAddr     string        // Optional: redis address (default: localhost:6379)
	RedisPassword string        // Optional: redis password
	RedisDB       int           // Optional: redis database number (default: 0)

	HTTPTimeout time.Duration // Optional: timeout on outbound API calls (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8081)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL: getEnvOrDefault("WEB_API_BASE_URL", "http://localhost:8080"),
		Channel:    getEnvOrDefault("WEB_CHANNEL", "https://web.custdesk.local"),

		CacheBackend:  getEnvOrDefault("WEB_CACHE_BACKEND", "memory"),
		CacheTTL:      getEnvDurationOrDefault("WEB_CACHE_TTL", cachex.DefaultTTL),
		RedisAddr:     getEnvOrDefault("WEB_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("WEB_REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("WEB_REDIS_DB", 0),

		HTTPTimeout: getEnvDurationOrDefault("WEB_HTTP_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8081),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
