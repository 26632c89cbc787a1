package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CALMRUSH_STORAGE", StorageSQLite)
	t.Setenv("CALMRUSH_ENV", "")
	t.Setenv("CALMRUSH_SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "calmrush.db", cfg.SQLitePath)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.True(t, cfg.MigrateOnStart)
}

func TestLoadProductionNeedsSecret(t *testing.T) {
	t.Setenv("CALMRUSH_STORAGE", StorageSQLite)
	t.Setenv("CALMRUSH_ENV", EnvProduction)
	t.Setenv("CALMRUSH_SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "CALMRUSH_SESSION_SECRET")

	t.Setenv("CALMRUSH_SESSION_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Production())
}

func TestLoadPostgresNeedsURL(t *testing.T) {
	t.Setenv("CALMRUSH_ENV", EnvDevelopment)
	t.Setenv("CALMRUSH_STORAGE", StoragePostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("CALMRUSH_ENV", EnvDevelopment)
	t.Setenv("CALMRUSH_STORAGE", "mongo")

	_, err := Load()
	assert.Error(t, err)
}
