package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret   string   // Required: HS256 signing key, min 32 bytes
	JWTIssuer   string   // Optional: issuer claim for tokens (default: customer-api)
	JWTAudience []string // Optional: audience claims (default: web)

	TokenTTL     time.Duration // Optional: access token lifetime (default: 12h)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./customers.db)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SeedAdminEmail    string // Optional: email for the first admin when the user table is empty
	SeedAdminPassword string // Optional: password for the seeded admin (generated when empty)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:   os.Getenv("API_JWT_SECRET"),
		JWTIssuer:   getEnvOrDefault("API_JWT_ISSUER", "customer-api"),
		JWTAudience: splitList(getEnvOrDefault("API_JWT_AUDIENCE", "web")),

		TokenTTL:     getEnvDurationOrDefault("API_TOKEN_TTL", 12*time.Hour),
		DatabaseFile: getEnvOrDefault("API_DATABASE_FILE", "customers.db"),
		PepperFile:   getEnvOrDefault("API_PEPPER_FILE", "pepper"),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
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
