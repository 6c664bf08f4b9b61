package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.UsesPostgres())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvBackendURL, "https://api.example.com")
	t.Setenv(EnvPageSize, "25")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvHTTPTimeout, "5s")
	t.Setenv(EnvDatabaseURL, "postgres://u:p@localhost/plates")

	cfg := Default()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.UsesPostgres())
}

func TestLoadFromEnvironmentRejectsBadNumbers(t *testing.T) {
	t.Setenv(EnvPageSize, "fifty")
	assert.Error(t, Default().LoadFromEnvironment())
}

func TestOverridesWin(t *testing.T) {
	t.Setenv(EnvSessionToken, "from-env")

	cfg := Default()
	require.NoError(t, cfg.LoadFromEnvironment())

	token := "from-flag"
	size := 10
	cfg.Apply(Overrides{SessionToken: &token, PageSize: &size})

	assert.Equal(t, "from-flag", cfg.SessionToken)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.BackendURL = "localhost:8080" }},
		{"bad view url", func(c *Config) { c.ViewURL = "ftp://x/list" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"unknown zone", func(c *Config) { c.TimeZone = "Mars/Olympus" }},
		{"negative seed", func(c *Config) { c.SeedCount = -1 }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
