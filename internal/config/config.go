package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// API settings
	APIBaseURL     string
	RequestTimeout int // seconds

	// Token persistence
	TokenFile string

	// Logging
	LogLevel string

	// Stub server settings (girastub only)
	StubHost          string
	StubPort          string
	StubJWTSecret     string
	StubJWTExpiration int // hours
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}

	return &Config{
		APIBaseURL:        getEnv("GIRA_API_URL", "http://localhost:8080/api/v1"),
		RequestTimeout:    getEnvAsInt("GIRA_REQUEST_TIMEOUT", 30),
		TokenFile:         getEnv("GIRA_TOKEN_FILE", defaultTokenFile()),
		LogLevel:          getEnv("GIRA_LOG_LEVEL", "info"),
		StubHost:          getEnv("GIRA_STUB_HOST", "0.0.0.0"),
		StubPort:          getEnv("GIRA_STUB_PORT", "8080"),
		StubJWTSecret:     getEnv("GIRA_STUB_JWT_SECRET", "dev-secret"),
		StubJWTExpiration: getEnvAsInt("GIRA_STUB_JWT_EXPIRATION", 24),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gira_token"
	}
	return home + "/.gira_token"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
