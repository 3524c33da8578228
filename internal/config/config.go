package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is built once at process start and passed by reference to every
// component that needs it. It is never mutated after Load returns.
type Config struct {
	ServerPort int

	DatabaseURL  string
	SharedSchema string

	AuthSecretKey   string
	AuthAlgorithm   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	LoginRateLimit  int
	GlobalRateLimit int
}

func Load() (*Config, error) {
	secretKey := os.Getenv("AUTH_SECRET_KEY")
	if secretKey == "" {
		return nil, fmt.Errorf("AUTH_SECRET_KEY is required")
	}

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	return &Config{
		ServerPort:      getEnvIntWithDefault("SERVER_PORT", 10000),
		DatabaseURL:     databaseURL,
		SharedSchema:    getEnvWithDefault("SHARED_SCHEMA_NAME", "shared"),
		AuthSecretKey:   secretKey,
		AuthAlgorithm:   getEnvWithDefault("AUTH_ALGORITHM", "HS256"),
		AccessTokenTTL:  time.Duration(getEnvIntWithDefault("AUTH_ACCESS_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvIntWithDefault("AUTH_REFRESH_EXPIRE_MINUTES", 10080)) * time.Minute,
		LoginRateLimit:  getEnvIntWithDefault("LOGIN_RATE_LIMIT", 10),      // login attempts per minute per IP
		GlobalRateLimit: getEnvIntWithDefault("GLOBAL_RATE_LIMIT", 10000), // requests per minute globally per IP
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault returns environment variable as duration or default if not set
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
