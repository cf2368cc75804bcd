// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for parley.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.parley/config.toml
//   - ~/.parley/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parley configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server" json:"server"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains assistant service configuration.
type ServerConfig struct {
	// BaseURL is the assistant service base URL; the client posts to
	// {base_url}/chat.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the chat round-trip timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// WordWrap is the maximum content width; 0 means fit the terminal.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// DebounceMs is the quiet window for coalescing rapid submits.
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			ShowTimestamps: true,
			WordWrap:       0,
			DebounceMs:     400,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

var (
	globalConfig *Config
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Bad config files degrade to defaults; the TUI has no good
			// place to surface this besides stderr before it starts.
			os.Stderr.WriteString("parley: config error, using defaults: " + err.Error() + "\n")
			cfg = Default()
		}
		globalConfig = cfg
	})
	return globalConfig
}

// ConfigDir returns the parley configuration directory (~/.parley),
// creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".parley")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the path of the config file that would be loaded,
// whether or not it exists. TOML wins over JSON.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	tomlPath := filepath.Join(dir, "config.toml")
	jsonPath := filepath.Join(dir, "config.json")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// Load reads configuration from disk, applies environment overrides, and
// validates the result. Missing files are not an error; defaults apply.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path. The format is
// chosen by file extension (.toml or .json).
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults plus environment.
	case err != nil:
		return nil, err
	default:
		if filepath.Ext(path) == ".json" {
			err = json.Unmarshal(data, cfg)
		} else {
			err = toml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies PARLEY_* environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("PARLEY_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("PARLEY_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Server.TimeoutSecs = secs
		}
	}
	return cfg
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("server.base_url must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("server.base_url scheme must be http or https")
	}
	if c.Server.TimeoutSecs <= 0 {
		return errors.New("server.timeout_secs must be positive")
	}
	if c.UI.DebounceMs < 0 {
		return errors.New("ui.debounce_ms must not be negative")
	}
	if c.UI.WordWrap < 0 {
		return errors.New("ui.word_wrap must not be negative")
	}
	return nil
}
