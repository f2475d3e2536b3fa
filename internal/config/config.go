// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Defaults are overridable through
// environment variables (a .env file is honored when present); per-run knobs
// come from CLI flags and presets layered on top.
type Config struct {
	DataDir     string // Base directory for the draw archive and caches
	DatasetCSV  string // Historical dataset CSV path (empty = use the archive)
	PresetsFile string // Optional YAML file with extra named presets
	LogLevel    string

	Seed        int64   // Default sampling seed
	Count       int     // Default number of sampled candidates
	AlphaRed    float64 // Dirichlet prior for the red pool
	AlphaBlue   float64 // Dirichlet prior for the blue pool
	Beta        float64 // Overlap penalty weight for re-bargaining
	Temperature float64 // Sampling temperature
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("SSQ_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".ssq-predictor")
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:     absDataDir,
		DatasetCSV:  getEnv("SSQ_DATASET_CSV", ""),
		PresetsFile: getEnv("SSQ_PRESETS_FILE", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Seed:        getEnvAsInt64("SSQ_SEED", 42),
		Count:       getEnvAsInt("SSQ_NUM_SETS", 6),
		AlphaRed:    getEnvAsFloat("SSQ_ALPHA_RED", 1.0),
		AlphaBlue:   getEnvAsFloat("SSQ_ALPHA_BLUE", 1.0),
		Beta:        getEnvAsFloat("SSQ_BETA", 0.5),
		Temperature: getEnvAsFloat("SSQ_TEMPERATURE", 1.0),
	}

	return cfg, nil
}

// ArchivePath returns the SQLite draw archive location inside DataDir.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, "draws.db")
}

// CachePath returns the msgpack draw cache location inside DataDir.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "draws.msgpack")
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
