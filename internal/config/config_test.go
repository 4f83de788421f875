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
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":5001", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Empty(t, cfg.LLM.Provider)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	yaml := "api:\n  base_url: http://quiz.example:8080\n  timeout: 3s\nserver:\n  addr: \":9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("PRAHAR_SERVER_ADDR", ":9999")
	t.Setenv("PRAHAR_LLM_PROVIDER", "mock")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://quiz.example:8080", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":9999", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PRAHAR_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PRAHAR_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"zero rate", func(c *Config) { c.Server.RateLimit.Requests = 0 }},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"bad provider", func(c *Config) { c.LLM.Provider = "llama" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
