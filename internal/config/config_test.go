package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "data/registry.db", cfg.Database.Path)
	assert.Equal(t, int64(10485760), cfg.Ingest.MaxBodyBytes)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SURVEYETL_SERVER_PORT", "9090")
	t.Setenv("SURVEYETL_LOGGING_LEVEL", "debug")
	t.Setenv("SURVEYETL_DATABASE_PATH", "/tmp/other.db")

	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
logging:
  output: both
  file_path: /tmp/surveyetl.log
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "/tmp/surveyetl.log", cfg.Logging.FilePath)
	// Untouched fields keep their defaults.
	assert.Equal(t, "data/registry.db", cfg.Database.Path)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{
			name:  "port out of range",
			key:   "SURVEYETL_SERVER_PORT",
			value: "70000",
		},
		{
			name:  "bad logging output",
			key:   "SURVEYETL_LOGGING_OUTPUT",
			value: "syslog",
		},
		{
			name:  "non-positive body cap",
			key:   "SURVEYETL_INGEST_MAX_BODY_BYTES",
			value: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFrom("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
