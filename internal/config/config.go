package config

import (
	"os"
	"strconv"
	"time"

	"routeplan/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Optimizer OptimizerConfig
	Parse     ParseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case batches are not persisted.
type DatabaseConfig struct {
	URL string
}

// OptimizerConfig holds assignment-service settings
type OptimizerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ParseConfig holds ingestion settings
type ParseConfig struct {
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Optimizer: OptimizerConfig{
			BaseURL: getEnvOrDefault("OPTIMIZER_URL", ""),
			Timeout: getEnvDurationOrDefault("OPTIMIZER_TIMEOUT", 30*time.Second),
		},
		Parse: ParseConfig{
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 32<<20),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Optimizer.Timeout <= 0 {
		return errors.ConfigInvalid("optimizer timeout must be positive")
	}
	if config.Parse.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("max upload size must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
