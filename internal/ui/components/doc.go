// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared visual building blocks for the
// helpdesk TUI: the header, the key-hint status bar, dashboard stat cards,
// and small text helpers used by every view.
package components
