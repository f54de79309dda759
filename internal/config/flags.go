package config

import (
	"flag"
	"os"

	"github.com/avolkov/authdb/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   store DSN (SQLite path or postgres:// URL)
//	-l string   log level ("debug", "info", "warn", "error")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the CLI command words pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
