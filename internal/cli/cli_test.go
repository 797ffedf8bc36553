// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := parseArgs(nil)
	assert.Equal(t, CmdTUI, cmd)
	assert.False(t, args.Admin)
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parseArgs([]string{"--admin", "--config", "/tmp/h.toml", "--base-url", "https://hd.example/api"})
	assert.Equal(t, CmdTUI, cmd)
	assert.True(t, args.Admin)
	assert.Equal(t, "/tmp/h.toml", args.ConfigPath)
	assert.Equal(t, "https://hd.example/api", args.BaseURL)
}

func TestParseStatusAlias(t *testing.T) {
	cmd, _ := parseArgs([]string{"s"})
	assert.Equal(t, CmdStatus, cmd)
}

func TestParseConfigSet(t *testing.T) {
	cmd, args := parseArgs([]string{"config", "set", "Theme", "light"})
	assert.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "set", args.Subcommand)
	assert.Equal(t, "theme", args.ConfigKey)
	assert.Equal(t, "light", args.ConfigVal)
}

func TestParseConfigDefaultsToShow(t *testing.T) {
	cmd, args := parseArgs([]string{"config"})
	assert.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "show", args.Subcommand)
}

func TestParseUnknownCommandShowsHelp(t *testing.T) {
	cmd, _ := parseArgs([]string{"frobnicate"})
	assert.Equal(t, CmdHelp, cmd)
}

func TestParseFlagsAfterCommand(t *testing.T) {
	cmd, args := parseArgs([]string{"status", "--base-url", "http://ops.example/api"})
	assert.Equal(t, CmdStatus, cmd)
	assert.Equal(t, "http://ops.example/api", args.BaseURL)
}
