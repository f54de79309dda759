package config

import (
	"encoding/json"
	"os"

	"github.com/avolkov/authdb/internal/flagx"
	"github.com/avolkov/authdb/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	LogLevel       string         `json:"log_level"`
	CommandTimeout timex.Duration `json:"command_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; if
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics: a half-applied config is worse than a crash at startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.CommandTimeout.Duration != 0 {
		config.CommandTimeout = c.CommandTimeout.Duration
	}
}
