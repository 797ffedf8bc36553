// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// helpdesk client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete helpdesk client configuration.
type Config struct {
	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Session configuration
	Session SessionConfig `toml:"session"`
}

// BackendConfig describes how to reach the helpdesk REST API.
type BackendConfig struct {
	// BaseURL is the API base, e.g. "https://helpdesk.internal/api".
	BaseURL string `toml:"base_url"`

	// TimeoutSecs bounds a single request attempt. Clamped to [1, 120].
	TimeoutSecs int `toml:"timeout_secs"`

	// MaxRetries is the attempt count for idempotent reads. Clamped to
	// [1, 5]; mutating requests never retry regardless.
	MaxRetries int `toml:"max_retries"`

	// LogPath, when set, enables request logging to this file. Only
	// method, path, status, and duration are logged.
	LogPath string `toml:"log_path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme"`

	// EmployeePageSize is the card-list page size. Clamped to [1, 50].
	EmployeePageSize int `toml:"employee_page_size"`

	// TechnicianPageSize is the table page size. Clamped to [1, 100].
	TechnicianPageSize int `toml:"technician_page_size"`
}

// SessionConfig controls remembered-session persistence.
type SessionConfig struct {
	// Dir is where the remembered session and its key file live.
	// Empty means ~/.helpdesk.
	Dir string `toml:"dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "http://localhost:5000/api",
			TimeoutSecs: 15,
			MaxRetries:  3,
		},
		UI: UIConfig{
			Theme:              "auto",
			EmployeePageSize:   6,
			TechnicianPageSize: 10,
		},
	}
}

// HomeDir returns the application home directory (~/.helpdesk).
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".helpdesk"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config at path (or the default location when path is
// empty), applies environment overrides, and validates. A missing file is
// not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.clamp()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies HELPDESK_* environment variables on top of
// whatever the file provided.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HELPDESK_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("HELPDESK_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = n
		}
	}
	if v := os.Getenv("HELPDESK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.MaxRetries = n
		}
	}
	if v := os.Getenv("HELPDESK_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("HELPDESK_LOG_PATH"); v != "" {
		c.Backend.LogPath = v
	}
	if v := os.Getenv("HELPDESK_SESSION_DIR"); v != "" {
		c.Session.Dir = v
	}
}

// clamp pulls out-of-range numeric settings back into valid bounds rather
// than failing startup over them.
func (c *Config) clamp() {
	c.Backend.TimeoutSecs = clampInt(c.Backend.TimeoutSecs, 1, 120)
	c.Backend.MaxRetries = clampInt(c.Backend.MaxRetries, 1, 5)
	c.UI.EmployeePageSize = clampInt(c.UI.EmployeePageSize, 1, 50)
	c.UI.TechnicianPageSize = clampInt(c.UI.TechnicianPageSize, 1, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks settings that cannot be clamped into sanity.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not a valid URL", c.Backend.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url scheme %q is not http(s)", u.Scheme)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme %q is not one of dark, light, auto", c.UI.Theme)
	}
	return nil
}

// SessionDir returns the directory for remembered-session files.
func (c *Config) SessionDir() (string, error) {
	if c.Session.Dir != "" {
		return c.Session.Dir, nil
	}
	return HomeDir()
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the config as TOML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
