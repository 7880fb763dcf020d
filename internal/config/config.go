// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"finflow-dashboard/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	DefaultCurrency string
	RequestTimeout  time.Duration
	DB              db.Config
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory, when present, is loaded first and never
// overrides variables that are already set.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load() // Missing .env is fine

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	currency := strings.ToUpper(getEnv("DEFAULT_CURRENCY", "USD"))
	if len(currency) != 3 {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY %q: want a 3-letter ISO code", currency)
	}

	return &AppConfig{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultCurrency: currency,
		RequestTimeout:  timeout,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"), // Default to localhost for local development
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "dashboarddb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
