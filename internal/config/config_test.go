// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// LOADING TESTS
// =============================================================================

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
	assert.Equal(t, 60, cfg.Server.TimeoutSecs)
}

func TestLoadFrom_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
base_url = "https://assistant.example.com"
timeout_secs = 30

[ui]
show_timestamps = false
debounce_ms = 200
`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://assistant.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.False(t, cfg.UI.ShowTimestamps)
	assert.Equal(t, 200, cfg.UI.DebounceMs)
}

func TestLoadFrom_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "server": {"base_url": "http://10.0.0.5:8000", "timeout_secs": 15}
}`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.Server.BaseURL)
	assert.Equal(t, 15, cfg.Server.TimeoutSecs)
	// Unset sections keep defaults.
	assert.True(t, cfg.UI.ShowTimestamps)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
word_wrap = 100
`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.UI.WordWrap)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[server
base_url = `), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_BASE_URL", "http://env-host:7000")
	t.Setenv("PARLEY_TIMEOUT_SECS", "5")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://env-host:7000", cfg.Server.BaseURL)
	assert.Equal(t, 5, cfg.Server.TimeoutSecs)
}

func TestEnvOverrides_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("PARLEY_TIMEOUT_SECS", "not-a-number")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Server.TimeoutSecs)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"relative base url", func(c *Config) { c.Server.BaseURL = "localhost:8000" }, true},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://host" }, true},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, true},
		{"negative debounce", func(c *Config) { c.UI.DebounceMs = -1 }, true},
		{"negative wrap", func(c *Config) { c.UI.WordWrap = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
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
