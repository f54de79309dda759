package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"authdb"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.DatabaseDSN, "auth.db")
	assert.Equal(t, c.LogLevel, "info")
	assert.Equal(t, 30*time.Second, c.CommandTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	resetArgs(t)

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, c.DatabaseDSN, "auth.db")
	assert.Equal(t, c.LogLevel, "info")
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/authdb")
	t.Setenv("LOG_LEVEL", "debug")

	c := LoadConfig()

	assert.Equal(t, "postgres://localhost:5432/authdb", c.DatabaseDSN)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	resetArgs(t, "-d", "flags.db", "users")
	t.Setenv("DATABASE_URL", "env.db")

	c := LoadConfig()

	assert.Equal(t, "flags.db", c.DatabaseDSN)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_dsn": "json.db", "log_level": "warn", "command_timeout": "5s"}`), 0o600))

	resetArgs(t, "-c", path)

	c := LoadConfig()

	assert.Equal(t, "json.db", c.DatabaseDSN)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.CommandTimeout)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	resetArgs(t, "-c", "does-not-exist.json")

	assert.Panics(t, func() { LoadConfig() })
}
