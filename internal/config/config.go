// Package config handles configuration for the authdb CLI, including
// defaults, .env / environment overlay, an optional JSON file, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the authdb CLI.
//
// Fields:
//   - DatabaseDSN: either a SQLite path/URI (default) or a postgres:// DSN.
//   - LogLevel: slog level name ("debug", "info", "warn", "error").
//     Debug is the only level at which secret material is logged.
//   - CommandTimeout: upper bound on a single command, store work included.
//     Zero disables the deadline.
type Config struct {
	DatabaseDSN    string
	LogLevel       string
	CommandTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "auth.db"
	c.LogLevel = "info"
	c.CommandTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
