package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "loom.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "server:\n  port: 8081\n  read_timeout: 5s\ndatabase:\n  path: /tmp/x.db\nlog:\n  format: text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOOM_SERVER_PORT", "9090")
	t.Setenv("LOOM_LOG_LEVEL", "debug")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_PATH", "legacy.db")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "legacy.db", cfg.Database.Path)
}

func TestValidate_RejectsBadPort(t *testing.T) {
	t.Setenv("LOOM_SERVER_PORT", "70000")

	_, err := Load(NewViper(), "")
	assert.ErrorContains(t, err, "server.port")
}
