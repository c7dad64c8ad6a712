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
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	src := `
engine {
  seed = 42
}

server {
  address = "0.0.0.0"
  port    = 9090
}

ui {
  card_back = "gold"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Engine.Seed)
	assert.Equal(t, int64(42), *cfg.Engine.Seed)
	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddress())
	assert.Equal(t, 300*time.Second, cfg.Server.IdleDuration())
	assert.Equal(t, "gold", cfg.UI.CardBack)
	assert.Equal(t, "info", cfg.UI.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse([]byte(`ui { log_level = "debug" }`), "inline.hcl")
	require.NoError(t, err)
	assert.Nil(t, cfg.Engine.Seed)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
}

func TestIdleTimeout(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want time.Duration
	}{
		{"unset uses default", `server { port = 9090 }`, DefaultIdleTimeout * time.Second},
		{"explicit value", `server { idle_timeout = 45 }`, 45 * time.Second},
		{"zero disables reaping", `server { idle_timeout = 0 }`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), "idle.hcl")
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.want, cfg.Server.IdleDuration())
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`server { port = `), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`server { bogus = 1 }`), "unknown.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"negative idle timeout", func(c *Config) { c.Server.IdleTimeout = intPtr(-1) }},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "loud" }},
		{"bad card back", func(c *Config) { c.UI.CardBack = "plaid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
