package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clubhub/pkg/config"

	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_UsesDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := config.Load("non-existent-config.yaml")
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.ContentAPI.PageLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Retry.Enabled)
}

func TestLoad_LoadsFromYAMLAndAppliesEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
server:
  address: ":9000"

logging:
  level: "debug"

content_api:
  base_url: "https://api.example.test"
  page_limit: 12

clubs:
  db_path: "/tmp/clubs.db"
`)

	t.Setenv("CLUBHUB_JWT_SECRET", "env-secret")
	t.Setenv("CLUBHUB_API_KEY", "env-key")

	cfg, err := config.Load(path)
	assert.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://api.example.test", cfg.ContentAPI.BaseURL)
	assert.Equal(t, 12, cfg.ContentAPI.PageLimit)
	assert.Equal(t, "/tmp/clubs.db", cfg.Clubs.DBPath)

	// Env wins over file and defaults.
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-key", cfg.ContentAPI.APIKey)

	// Unspecified sections keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	path := writeTempConfig(t, `
content_api:
  page_limit: -5
`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *config.Config) {}, wantErr: false},
		{name: "empty server address", mutate: func(c *config.Config) { c.Server.Address = "" }, wantErr: true},
		{name: "empty log level", mutate: func(c *config.Config) { c.Logging.Level = "" }, wantErr: true},
		{name: "redis enabled without address", mutate: func(c *config.Config) {
			c.Redis.Enabled = true
			c.Redis.Address = ""
		}, wantErr: true},
		{name: "empty jwt secret", mutate: func(c *config.Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "rate limiting without rps", mutate: func(c *config.Config) {
			c.RateLimiting.Enabled = true
			c.RateLimiting.RequestsPerSecond = 0
		}, wantErr: true},
		{name: "retry multiplier below one", mutate: func(c *config.Config) { c.Retry.Multiplier = 0.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
