// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the helpdesk TUI.
//
// A Theme bundles every lipgloss style the views use, plus the colored
// badges for ticket status and urgency. Terminal color capability is
// detected through termenv; the "auto" theme follows the terminal's
// background.
package styles
