package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.yaml"))
	// An explicit path that does not exist is a read error, not "not found".
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
database:
  driver: sqlite
  sqlite_path: test.db
booking:
  max_probes: 50
ratelimit:
  consent_limit: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("HHG_RATELIMIT_CONSENT_LIMIT", "7")

	cfg, err := Load("test", path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Booking.MaxProbes)
	assert.Equal(t, 7, cfg.RateLimit.ConsentLimit)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "HHG", cfg.Booking.NumberPrefix)
	assert.Equal(t, "database", cfg.RateLimit.Store)
	assert.Same(t, cfg, Get())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.Database.Driver = "sqlite"
		c.RateLimit.Store = "database"
		c.Booking.MaxProbes = 1000
		c.Privacy.MasterSecret = "s3cret"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "unsupported database driver"},
		{name: "bad store", mutate: func(c *Config) { c.RateLimit.Store = "memcached" }, wantErr: "unsupported rate limit store"},
		{name: "zero probes", mutate: func(c *Config) { c.Booking.MaxProbes = 0 }, wantErr: "max_probes"},
		{
			name: "default secret in release",
			mutate: func(c *Config) {
				c.Server.Mode = "release"
				c.Privacy.MasterSecret = defaultMasterSecret
			},
			wantErr: "master_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
