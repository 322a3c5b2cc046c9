// Package config loads runtime configuration from environment variables,
// with defaults that let the demo run out of the box.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.
type Config struct {
	Env  string
	Port string

	// Storage selects the key-value backend: "sqlite", "redis", or "memory".
	Storage string
	DBPath  string

	JWTSecret string
	TokenTTL  time.Duration

	// Simulated latencies for the auth and payment flows.
	LoginDelay   time.Duration
	PaymentDelay time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:          getEnv("APP_ENV", "dev"),
		Port:         getEnv("PORT", "8080"),
		Storage:      getEnv("STORAGE", "sqlite"),
		DBPath:       getEnv("DB_PATH", "./data/powerbill.db"),
		JWTSecret:    getEnv("JWT_SECRET", "powerbill-dev-secret"),
		TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		LoginDelay:   time.Duration(getEnvInt("LOGIN_DELAY_MS", 1000)) * time.Millisecond,
		PaymentDelay: time.Duration(getEnvInt("PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
