// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port        int
	DBPath      string
	LogLevel    string
	MetricsPath string
	CORSOrigin  string
}

// Load reads settings from environment variables, falling back to defaults.
// Values from the given .env files (or ./.env when none are given) are applied
// first; variables already set in the environment win. A missing .env file is
// not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q: must be a number between 1 and 65535", os.Getenv("PORT"))
	}

	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "./data/tripsplit.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsPath: getEnv("METRICS_PATH", "/metrics"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
