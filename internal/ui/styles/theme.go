// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the helpdesk TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

// Theme holds all the styled components for the application. It detects
// the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CHROME
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// FEEDBACK
	// ==========================================================================

	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	InfoText    lipgloss.Style
	MutedText   lipgloss.Style

	// ==========================================================================
	// TICKET CARDS AND TABLE
	// ==========================================================================

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style

	TableHeader      lipgloss.Style
	TableRow         lipgloss.Style
	TableRowSelected lipgloss.Style

	StatCard      lipgloss.Style
	StatValue     lipgloss.Style
	StatLabel     lipgloss.Style

	// ==========================================================================
	// FORMS AND OVERLAYS
	// ==========================================================================

	FormLabel    lipgloss.Style
	FormFocused  lipgloss.Style
	FormHelp     lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style

	// ==========================================================================
	// DOMAIN BADGES
	// ==========================================================================

	statusBadges  map[model.Status]lipgloss.Style
	urgencyBadges map[model.Urgency]lipgloss.Style
}

// New creates a theme for the requested mode: "dark", "light", or "auto".
func New(mode string) *Theme {
	profile := termenv.ColorProfile()

	isDark := true
	switch mode {
	case "light":
		isDark = false
	case "dark":
		isDark = true
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	accent := lipgloss.AdaptiveColor{Light: "26", Dark: "39"}
	muted := lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
	surface := lipgloss.AdaptiveColor{Light: "254", Dark: "236"}

	t.Header = lipgloss.NewStyle().
		Padding(0, 1).
		Background(surface)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.HeaderSubtitle = lipgloss.NewStyle().Foreground(muted)

	t.StatusBar = lipgloss.NewStyle().Padding(0, 1).Background(surface)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(muted)

	t.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	t.SuccessText = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	t.InfoText = lipgloss.NewStyle().Foreground(accent)
	t.MutedText = lipgloss.NewStyle().Foreground(muted)

	cardBorder := lipgloss.RoundedBorder()
	t.Card = lipgloss.NewStyle().
		Border(cardBorder).
		BorderForeground(muted).
		Padding(0, 1)
	t.CardSelected = t.Card.
		BorderForeground(accent)
	t.CardTitle = lipgloss.NewStyle().Bold(true)
	t.CardMeta = lipgloss.NewStyle().Foreground(muted)

	t.TableHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	t.TableRow = lipgloss.NewStyle()
	t.TableRowSelected = lipgloss.NewStyle().Bold(true).Foreground(accent)

	t.StatCard = lipgloss.NewStyle().
		Border(cardBorder).
		BorderForeground(muted).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.StatValue = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.StatLabel = lipgloss.NewStyle().Foreground(muted)

	t.FormLabel = lipgloss.NewStyle().Bold(true)
	t.FormFocused = lipgloss.NewStyle().Foreground(accent)
	t.FormHelp = lipgloss.NewStyle().Foreground(muted)
	t.Overlay = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(1, 2)
	t.OverlayTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	t.statusBadges = map[model.Status]lipgloss.Style{
		model.StatusOpen:       badge("25", "33"),
		model.StatusInProgress: badge("130", "214"),
		model.StatusResolved:   badge("28", "42"),
		model.StatusClosed:     badge("240", "245"),
	}
	t.urgencyBadges = map[model.Urgency]lipgloss.Style{
		model.UrgencyLow:      badge("240", "245"),
		model.UrgencyNormal:   badge("25", "33"),
		model.UrgencyHigh:     badge("130", "214"),
		model.UrgencyCritical: badge("124", "203"),
	}

	return t
}

// badge builds a small foreground-colored badge style.
func badge(light, dark string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
}

// StatusBadge renders a status as a colored badge.
func (t *Theme) StatusBadge(s model.Status) string {
	style, ok := t.statusBadges[s]
	if !ok {
		return s.DisplayName()
	}
	return style.Render(s.DisplayName())
}

// UrgencyBadge renders an urgency as a colored badge.
func (t *Theme) UrgencyBadge(u model.Urgency) string {
	style, ok := t.urgencyBadges[u]
	if !ok {
		return u.DisplayName()
	}
	return style.Render(u.DisplayName())
}
