package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Server)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server: https://crm.example.com\noutput: json\ntimeout: 30s\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com", cfg.Server)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))
	t.Setenv("CUSTRACK_OUTPUT", "yaml")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("CUSTRACK_OUTPUT", "yaml")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), map[string]any{"output": "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_InvalidOutputRejected(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), map[string]any{"output": "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Server = "https://crm.example.com"
	cfg.ClientID = "11111111-2222-3333-4444-555555555555"
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, got.Server)
	assert.Equal(t, cfg.ClientID, got.ClientID)
}

func TestEnsureClientID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	created, err := EnsureClientID(cfg, path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, cfg.ClientID)

	// A second call keeps the persisted identity.
	reloaded, err := Load(path, nil)
	require.NoError(t, err)
	created, err = EnsureClientID(reloaded, path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cfg.ClientID, reloaded.ClientID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CLIConfig)
		wantOK bool
	}{
		{"defaults", func(*CLIConfig) {}, true},
		{"empty server", func(c *CLIConfig) { c.Server = "" }, false},
		{"zero timeout", func(c *CLIConfig) { c.Timeout = 0 }, false},
		{"bad log level", func(c *CLIConfig) { c.Log.Level = "trace" }, false},
		{"yaml output", func(c *CLIConfig) { c.Output = "yaml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
