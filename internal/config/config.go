package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config aggregates the runtime settings the application needs.
type Config struct {
	DBPath string // IMPULSO_DB
	UserID string // IMPULSO_USER, optional override of the stored identity
	Debug  bool   // IMPULSO_DEBUG, log finalize telemetry to stderr
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists. Missing values fall back to
// defaults under ~/.impulso.
func Load() (*Config, error) {
	// A missing .env is fine; explicit env vars always win.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath: os.Getenv("IMPULSO_DB"),
		UserID: os.Getenv("IMPULSO_USER"),
		Debug:  os.Getenv("IMPULSO_DEBUG") != "",
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".impulso", "impulso.db")
	}

	return cfg, nil
}
