package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "data/decks", cfg.Storage.Badger.Path)
	assert.Equal(t, 50, cfg.Engine.HistoryLimit)
	assert.Equal(t, 8, cfg.Engine.ImportConcurrency)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
storage:
  backend: postgres
  postgres:
    url: postgres://localhost:5432/decks
engine:
  history_limit: 10
  import_concurrency: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost:5432/decks", cfg.Storage.Postgres.URL)
	assert.Equal(t, 10, cfg.Engine.HistoryLimit)
	assert.Equal(t, 2, cfg.Engine.ImportConcurrency)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: cassandra\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsPostgresWithoutURL(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: postgres\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "storage: [not a map\n")

	_, err := Load(path)
	assert.Error(t, err)
}
