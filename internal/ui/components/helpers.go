// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared visual building blocks for the
// helpdesk TUI.
package components

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

// Truncate shortens s to at most width display cells, appending an
// ellipsis when anything was cut. Width is measured in terminal cells,
// not bytes, so CJK titles truncate correctly.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// Pad right-pads s with spaces to exactly width display cells,
// truncating first when it is too long.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// FormatTimestamp renders a wire timestamp for display. Unparsable
// timestamps render as the raw value rather than a fake date.
func FormatTimestamp(raw string) string {
	ts := model.ParseTimestamp(raw)
	if ts.IsZero() {
		if raw == "" {
			return "unknown"
		}
		return raw
	}
	return ts.Local().Format("Jan 2 2006 15:04")
}

// PageIndicator renders the "2 / 5" pagination caption.
func PageIndicator(page, totalPages int) string {
	return fmt.Sprintf("%d / %d", page, totalPages)
}

// Relative renders a duration since ts in coarse human units.
func Relative(ts time.Time, now time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
