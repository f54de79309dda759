package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first if present; variables
// already set in the environment win over the file.
//
// Recognized variables:
//
//	DATABASE_URL — store DSN (SQLite path or postgres:// URL)
//	LOG_LEVEL    — slog level name
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
}
