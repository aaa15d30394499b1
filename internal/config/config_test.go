package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DB_DSN": "postgres://localhost/courts", "TIMEZONE": "UTC"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, 15*time.Minute, cfg.DraftTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.BotEnabled())
}

func TestFromEnv_RequiresDSN(t *testing.T) {
	_, err := FromEnv(env(nil))
	assert.Error(t, err)
}

func TestFromEnv_BadDuration(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"DB_DSN": "x", "TIMEZONE": "UTC", "LOCK_TTL": "soon"}))
	assert.ErrorContains(t, err, "LOCK_TTL")

	_, err = FromEnv(env(map[string]string{"DB_DSN": "x", "TIMEZONE": "UTC", "DRAFT_TTL": "-1m"}))
	assert.ErrorContains(t, err, "DRAFT_TTL")
}
