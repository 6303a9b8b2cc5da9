package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"no db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"auth without secret", func(c *Config) { c.Auth.Enabled = true }, "auth.jwt_secret"},
		{"zero ttl", func(c *Config) { c.Draft.SessionTTL = 0 }, "draft.session_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
database:
  path: /tmp/c.db
location:
  interval: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "/tmp/c.db", c.Database.Path)
	assert.Equal(t, 5*time.Second, c.Location.Interval)
	// untouched sections keep defaults
	assert.Equal(t, 30*time.Minute, c.Draft.SessionTTL)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DB_PATH", "/data/env.db")
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/env.db", c.Database.Path)
	assert.Equal(t, 7070, c.Server.Port)
	assert.True(t, c.Auth.Enabled)
	assert.Equal(t, "s3cret", c.Auth.JWTSecret)
	require.NoError(t, c.Validate())
}

func TestApplyEnvBadPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)
}
