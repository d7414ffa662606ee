package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 8080
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "fittracker"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"

[production]
host = "localhost"
port = 9000
log_level = "debug"
logs_path = "/var/log/fittracker/service.log"
sentry_enabled = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "fittracker"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"
`

func testConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o644))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("dev", testConfigFile(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, "fittracker", cfg.PostgresDBName)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("production", testConfigFile(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/log/fittracker/service.log", cfg.LogsPath)
	assert.True(t, cfg.SentryEnabled)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", testConfigFile(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("dev", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}
