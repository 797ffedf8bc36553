// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package technician

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/pipeline"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
)

// Column layout. Title and description absorb whatever width remains.
const (
	colSelect  = 4
	colID      = 6
	colStatus  = 13
	colUrgency = 10
	colCreated = 18
)

// columns maps sort keys to header captions in display order.
var columns = []struct {
	key     pipeline.SortKey
	caption string
}{
	{pipeline.SortByID, "ID"},
	{pipeline.SortByTitle, "Title"},
	{pipeline.SortByDescription, "Description"},
	{pipeline.SortByStatus, "Status"},
	{pipeline.SortByUrgency, "Urgency"},
	{pipeline.SortByCreated, "Created"},
}

// renderTable draws the stat cards, the table, and the pagination footer.
func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.theme.SuccessText.Render(m.notice))
		b.WriteString("\n")
	}
	if m.warn != "" {
		b.WriteString(m.theme.ErrorText.Render(m.warn))
		b.WriteString("\n")
	}
	if m.state == StateSearch || m.view.Criteria().Search != "" {
		b.WriteString(m.theme.FormLabel.Render("Search: "))
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderHeaderRow())
	b.WriteString("\n")

	if len(m.page.Tickets) == 0 {
		b.WriteString(m.theme.MutedText.Render("No tickets match."))
		return b.String()
	}

	for i, t := range m.page.Tickets {
		b.WriteString(m.renderRow(t, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("Page " + components.PageIndicator(m.page.Number, m.page.TotalPages)))
	return b.String()
}

// renderStats renders the summary cards.
func (m Model) renderStats() string {
	s := m.stats
	return components.StatCards(m.theme, []components.Stat{
		{Value: strconv.Itoa(s.Total), Label: "Total"},
		{Value: strconv.Itoa(s.Open), Label: "Open"},
		{Value: strconv.Itoa(s.InProgress), Label: "In Progress"},
		{Value: strconv.Itoa(s.Closed), Label: "Closed"},
		{Value: strconv.Itoa(s.Urgent), Label: "Urgent"},
	})
}

// renderHeaderRow renders column captions with the active sort marker.
func (m Model) renderHeaderRow() string {
	c := m.view.Criteria()
	marker := func(key pipeline.SortKey) string {
		if c.SortKey != key {
			return ""
		}
		if c.SortDir == pipeline.Ascending {
			return "▲"
		}
		return "▼"
	}

	titleW, descW := m.flexWidths()
	cells := []string{
		components.Pad("", colSelect),
		components.Pad(fmt.Sprintf("1 %s%s", columns[0].caption, marker(columns[0].key)), colID),
		components.Pad(fmt.Sprintf("2 %s%s", columns[1].caption, marker(columns[1].key)), titleW),
		components.Pad(fmt.Sprintf("3 %s%s", columns[2].caption, marker(columns[2].key)), descW),
		components.Pad(fmt.Sprintf("4 %s%s", columns[3].caption, marker(columns[3].key)), colStatus),
		components.Pad(fmt.Sprintf("5 %s%s", columns[4].caption, marker(columns[4].key)), colUrgency),
		components.Pad(fmt.Sprintf("6 %s%s", columns[5].caption, marker(columns[5].key)), colCreated),
	}
	return m.theme.TableHeader.Render(strings.Join(cells, ""))
}

// renderRow renders one table row.
func (m Model) renderRow(t model.Ticket, atCursor bool) string {
	titleW, descW := m.flexWidths()

	check := "[ ] "
	if m.selected[t.ID] {
		check = "[x] "
	}

	cells := check +
		components.Pad("#"+strconv.Itoa(t.ID), colID) +
		components.Pad(components.Truncate(t.Title, titleW-1), titleW) +
		components.Pad(components.Truncate(t.Description, descW-1), descW)

	style := m.theme.TableRow
	if atCursor {
		style = m.theme.TableRowSelected
	}

	return style.Render(cells) +
		padStyled(m.theme.StatusBadge(t.Status), t.Status.DisplayName(), colStatus) +
		padStyled(m.theme.UrgencyBadge(t.Urgency), t.Urgency.DisplayName(), colUrgency) +
		m.theme.CardMeta.Render(components.Truncate(components.FormatTimestamp(t.CreatedAt), colCreated))
}

// padStyled pads a styled cell to width using the plain text's width, so
// color escape sequences do not skew the column alignment.
func padStyled(styled, plain string, width int) string {
	gap := width - runewidth.StringWidth(plain)
	if gap < 1 {
		gap = 1
	}
	return styled + strings.Repeat(" ", gap)
}

// flexWidths splits the width left over after the fixed columns between
// title and description.
func (m Model) flexWidths() (int, int) {
	fixed := colSelect + colID + colStatus + colUrgency + colCreated
	flex := m.width - 4 - fixed
	if flex < 24 {
		flex = 24
	}
	title := flex * 2 / 5
	return title, flex - title
}
