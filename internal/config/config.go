// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for the results database (always absolute)
	LogLevel         string
	Port             int
	DevMode          bool
	RetentionDays    int    // Experiment rows older than this are pruned
	CleanupSchedule  string // Cron expression for the retention job
	MaxDensityQubits int    // Upper bound for density-mode runs (memory grows 4^n)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory with fallback logic:
	// 1. Check QLAB_DATA_DIR environment variable
	// 2. If not set, default to ./data
	// 3. Always resolve to absolute path and ensure it exists
	dataDir := getEnv("QLAB_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		Port:             getEnvAsInt("QLAB_PORT", 8010),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RetentionDays:    getEnvAsInt("QLAB_RETENTION_DAYS", 90),
		CleanupSchedule:  getEnv("QLAB_CLEANUP_SCHEDULE", "@daily"),
		MaxDensityQubits: getEnvAsInt("QLAB_MAX_DENSITY_QUBITS", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.RetentionDays < 1 {
		return fmt.Errorf("retention days must be at least 1, got %d", c.RetentionDays)
	}
	if c.MaxDensityQubits < 1 {
		return fmt.Errorf("max density qubits must be at least 1, got %d", c.MaxDensityQubits)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
