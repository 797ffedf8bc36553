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

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 6, cfg.UI.EmployeePageSize)
	assert.Equal(t, 10, cfg.UI.TechnicianPageSize)
	assert.Equal(t, "auto", cfg.UI.Theme)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.toml"))
	require.Error(t, err, "explicit missing path is an error")
	assert.Nil(t, cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[backend]
base_url = "https://helpdesk.example.com/api"
timeout_secs = 30

[ui]
theme = "dark"
employee_page_size = 8
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://helpdesk.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 8, cfg.UI.EmployeePageSize)
	// Unspecified fields keep defaults.
	assert.Equal(t, 10, cfg.UI.TechnicianPageSize)
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[backend]
base_url = "http://from-file/api"
`), 0o600))

	t.Setenv("HELPDESK_BASE_URL", "http://from-env/api")
	t.Setenv("HELPDESK_TIMEOUT_SECS", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api", cfg.Backend.BaseURL)
	assert.Equal(t, 42, cfg.Backend.TimeoutSecs)
}

func TestOutOfRangeValuesAreClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[backend]
timeout_secs = 9999
max_retries = 0

[ui]
employee_page_size = -3
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Backend.TimeoutSecs)
	assert.Equal(t, 1, cfg.Backend.MaxRetries)
	assert.Equal(t, 1, cfg.UI.EmployeePageSize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Backend.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend.BaseURL = "ftp://example.com"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.UI.Theme = "solarized"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "https://desk.internal/api"
	cfg.UI.Theme = "light"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Backend.BaseURL, loaded.Backend.BaseURL)
	assert.Equal(t, "light", loaded.UI.Theme)
}

func TestSessionDirDefaultsToHome(t *testing.T) {
	cfg := Default()
	cfg.Session.Dir = "/tmp/custom"
	dir, err := cfg.SessionDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)
}
