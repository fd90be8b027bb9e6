package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 60*time.Millisecond, cfg.Export.PaintDelay())
	assert.Equal(t, 200*time.Millisecond, cfg.Export.ModalSettle())
	assert.Equal(t, "Daily Order Summary", cfg.Export.Title)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 8081
storage:
  driver: postgres
database:
  host: db.internal
  port: 5433
rabbitmq:
  enabled: true
export:
  paint_delay_ms: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DAILY_ORDERS_DB_HOST", "db.override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, 10*time.Millisecond, cfg.Export.PaintDelay())
	// untouched keys keep their defaults
	assert.Equal(t, 200, cfg.Export.ModalSettleMS)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: redis\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("DAILY_ORDERS_PORT", "not-a-number")
	_, err = Load("")
	assert.Error(t, err)
}
