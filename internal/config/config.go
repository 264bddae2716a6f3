package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	JWTExpiry      time.Duration
	AdminPassHash  string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string

	StorageURL        string
	StorageBucket     string
	StorageServiceKey string

	RateLimitEnabled bool
}

func Load() *Config {
	// A missing .env is fine in containers; env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	adminPassHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminPassHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}

	jwtExpiry := cast.ToDuration(os.Getenv("JWT_EXPIRY"))
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
	}

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "dealer-inventory"
	}

	rateLimitEnabled := true
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		rateLimitEnabled = cast.ToBool(v)
	}

	return &Config{
		Port:           port,
		DatabaseURL:    databaseURL,
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      jwtExpiry,
		AdminPassHash:  adminPassHash,
		AllowedOrigins: splitAndTrim(allowedOrigins),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),

		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageBucket:     bucket,
		StorageServiceKey: os.Getenv("STORAGE_SERVICE_KEY"),

		RateLimitEnabled: rateLimitEnabled,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
