// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// helpdesk client.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides, loaded from (in order of precedence):
//   - the path given with --config
//   - ~/.helpdesk/config.toml
//   - built-in defaults
//
// Environment overrides (HELPDESK_BASE_URL, HELPDESK_TIMEOUT_SECS, ...)
// are applied after file loading, so a shell export always wins. Watch
// re-loads the file when it changes on disk so base-URL or theme edits
// apply without restarting the client.
package config
