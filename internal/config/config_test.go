package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, 2368, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)/fieldpost")
	assert.Contains(t, cfg.DSN, "parseTime=true")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
port: 8080
env: Production
jwt_secret: s3cret
allowed_origins:
  - https://example.com
  -
database:
  host: db.internal
  name: forms
redis:
  host: cache.internal
  db: 3
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN, "tcp(db.internal:3306)/forms")
	assert.Equal(t, "redis://cache.internal:6379/3", cfg.RedisURL)
}

func TestLoadExplicitDSNWins(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
dsn: user:pass@tcp(other:3306)/custom?parseTime=true
redis_url: redis://other:6380/1
`))
	require.NoError(t, err)
	assert.Equal(t, "user:pass@tcp(other:3306)/custom?parseTime=true", cfg.DSN)
	assert.Equal(t, "redis://other:6380/1", cfg.RedisURL)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 8080\n"))
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 70000\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestRedisURLValueAddsScheme(t *testing.T) {
	c := RedisRuntimeConfig{URL: "cache.internal:6379"}
	assert.Equal(t, "redis://cache.internal:6379", c.URLValue())
}
