// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package employee

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// detailView renders a single ticket with its history inside a scrollable
// viewport. The description is rendered as markdown.
type detailView struct {
	theme    *styles.Theme
	viewport viewport.Model
	ticket   model.Ticket
	width    int
}

func newDetailView(theme *styles.Theme) detailView {
	return detailView{
		theme:    theme,
		viewport: viewport.New(80, 20),
	}
}

func (d *detailView) setSize(width, height int) {
	d.width = width
	d.viewport.Width = width - 6
	d.viewport.Height = height - 8
	if d.viewport.Height < 3 {
		d.viewport.Height = 3
	}
}

// show loads a ticket into the inspector and scrolls to the top.
func (d *detailView) show(t model.Ticket) {
	d.ticket = t
	d.viewport.SetContent(d.content())
	d.viewport.GotoTop()
}

// update forwards scroll keys to the viewport.
func (d detailView) update(msg tea.KeyMsg) (detailView, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// content builds the inspector body: badges, rendered description, then
// the history log newest first.
func (d detailView) content() string {
	t := d.ticket
	var b strings.Builder

	b.WriteString(d.theme.CardTitle.Render(fmt.Sprintf("#%d  %s", t.ID, t.Title)))
	b.WriteString("\n")
	b.WriteString(d.theme.StatusBadge(t.Status))
	b.WriteString("  ")
	b.WriteString(d.theme.UrgencyBadge(t.Urgency))
	b.WriteString("  ")
	b.WriteString(d.theme.CardMeta.Render("opened " + components.FormatTimestamp(t.CreatedAt)))
	b.WriteString("\n\n")
	b.WriteString(renderMarkdown(t.Description, d.viewport.Width))

	if len(t.History) > 0 {
		b.WriteString("\n")
		b.WriteString(d.theme.CardTitle.Render("History"))
		b.WriteString("\n")
		for _, h := range sortedHistory(t.History) {
			b.WriteString(d.theme.CardMeta.Render(components.FormatTimestamp(h.UpdatedAt)))
			b.WriteString("  ")
			b.WriteString(h.Update)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// render draws the inspector frame around the viewport.
func (d detailView) render() string {
	footer := d.theme.MutedText.Render("↑/↓ scroll · esc back")
	return d.viewport.View() + "\n\n" + footer
}

// sortedHistory returns the entries newest first without mutating the
// ticket's slice. Unparsable timestamps sort last.
func sortedHistory(entries []model.HistoryEntry) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Time().Before(out[i].Time())
	})
	return out
}

// renderMarkdown renders ticket text as terminal markdown, falling back to
// the raw text when rendering fails.
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}
