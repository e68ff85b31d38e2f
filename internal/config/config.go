// Package config loads and validates client configuration from environment
// variables. A .env file, if present, is loaded by the CLI entry point
// before Load runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration values for the train schedule client.
// Values are populated by Load from environment variables.
type Config struct {
	// APIURL is the booking API root. Defaults to
	// "http://localhost:3000/api". Set API_URL to override.
	APIURL string

	// LogLevel controls the minimum log level. Defaults to "warn" so
	// normal CLI output is not interleaved with request logs.
	// Valid values: debug, info, warn, error.
	LogLevel string

	// SessionFile is where the session token and user are persisted.
	// Defaults to trainctl/session.json under the OS config directory.
	// Set SESSION_FILE to override.
	SessionFile string

	// HTTPTimeout bounds every API request. Defaults to 10s. Set
	// HTTP_TIMEOUT_SECONDS to override.
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	cfg := Config{
		APIURL:      getEnv("API_URL", "http://localhost:3000/api"),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		SessionFile: os.Getenv("SESSION_FILE"),
		HTTPTimeout: 10 * time.Second,
	}

	if raw := os.Getenv("HTTP_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 1 {
			return Config{}, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_FILE not set and no user config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "trainctl", "session.json")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
