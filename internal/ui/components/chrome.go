// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared visual building blocks for the
// helpdesk TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header renders the one-line application header with a title and an
// optional right-aligned identity segment ("Ama Mensah · Employee").
func Header(theme *styles.Theme, width int, title, subtitle, identity string) string {
	left := theme.HeaderTitle.Render(title)
	if subtitle != "" {
		left += " " + theme.HeaderSubtitle.Render(subtitle)
	}

	right := theme.HeaderSubtitle.Render(identity)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom key-hint bar. Hints that do not fit the
// width are dropped from the right.
func StatusBar(theme *styles.Theme, width int, shortcuts []Shortcut) string {
	var parts []string
	for _, s := range shortcuts {
		parts = append(parts, theme.ShortcutKey.Render(s.Key)+" "+theme.ShortcutDesc.Render(s.Desc))
	}

	sep := theme.ShortcutDesc.Render("  ")
	line := strings.Join(parts, sep)
	for len(parts) > 1 && lipgloss.Width(line) > width-2 {
		parts = parts[:len(parts)-1]
		line = strings.Join(parts, sep)
	}
	return theme.StatusBar.Width(width).Render(line)
}

// =============================================================================
// STAT CARDS
// =============================================================================

// Stat is one dashboard figure.
type Stat struct {
	Value string
	Label string
}

// StatCards renders the technician dashboard figures as a row of cards.
func StatCards(theme *styles.Theme, stats []Stat) string {
	cards := make([]string, len(stats))
	for i, s := range stats {
		body := theme.StatValue.Render(s.Value) + "\n" + theme.StatLabel.Render(s.Label)
		cards[i] = theme.StatCard.Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
