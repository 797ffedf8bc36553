// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline implements the client-side list processing shared by the
// ticket views.
package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

// =============================================================================
// CRITERIA
// =============================================================================

// SortKey selects the field tickets are ordered by.
type SortKey string

const (
	SortByCreated     SortKey = "created_at"
	SortByUrgency     SortKey = "urgency"
	SortByID          SortKey = "id"
	SortByTitle       SortKey = "title"
	SortByDescription SortKey = "description"
	SortByStatus      SortKey = "status"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Criteria is the full set of user-driven list controls. The zero value
// passes every ticket and sorts by creation time descending on page one.
type Criteria struct {
	// Search is matched case-insensitively against title and description.
	Search string

	// StatusFilter and UrgencyFilter are exact matches when non-empty.
	StatusFilter  model.Status
	UrgencyFilter model.Urgency

	// Sort configuration. An empty SortKey means SortByCreated.
	SortKey SortKey
	SortDir Direction

	// Page is 1-based and clamped against the filtered count.
	Page     int
	PageSize int
}

// Page is the result of applying the pipeline: the slice of tickets shown
// to the user plus the pagination facts the views render.
type Page struct {
	Tickets    []model.Ticket
	Number     int // clamped, 1-based
	TotalPages int // always >= 1
	Filtered   int // count after search and filters, before pagination
	Total      int // count of the raw input
}

// =============================================================================
// PIPELINE
// =============================================================================

// fold is the case folder used for search and filter matching. Unicode case
// folding rather than ASCII lowering, titles come from user input.
var fold = cases.Fold()

// Apply runs the full pipeline: search, filter, sort, paginate. The input
// slice is never mutated.
func Apply(tickets []model.Ticket, c Criteria) Page {
	filtered := filter(tickets, c)
	sortTickets(filtered, c)

	size := c.PageSize
	if size <= 0 {
		size = len(filtered)
		if size == 0 {
			size = 1
		}
	}

	totalPages := (len(filtered) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page := ClampPage(c.Page, totalPages)

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Tickets:    filtered[start:end],
		Number:     page,
		TotalPages: totalPages,
		Filtered:   len(filtered),
		Total:      len(tickets),
	}
}

// ClampPage clamps a 1-based page number to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	n := (count + pageSize - 1) / pageSize
	if n < 1 {
		return 1
	}
	return n
}

// filter applies the search and categorical stages, preserving input order.
func filter(tickets []model.Ticket, c Criteria) []model.Ticket {
	needle := fold.String(strings.TrimSpace(c.Search))

	out := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		if c.StatusFilter != "" && !strings.EqualFold(string(t.Status), string(c.StatusFilter)) {
			continue
		}
		if c.UrgencyFilter != "" && !strings.EqualFold(string(t.Urgency), string(c.UrgencyFilter)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// searchFields are the text fields the free-text search matches against.
var searchFields = []func(model.Ticket) string{
	func(t model.Ticket) string { return t.Title },
	func(t model.Ticket) string { return t.Description },
}

// matchesSearch reports whether any configured text field contains the
// already-folded needle.
func matchesSearch(t model.Ticket, needle string) bool {
	for _, field := range searchFields {
		if strings.Contains(fold.String(field(t)), needle) {
			return true
		}
	}
	return false
}

// sortTickets orders tickets in place by the criteria's key and direction.
// The sort is stable so equal keys keep their original relative order.
func sortTickets(tickets []model.Ticket, c Criteria) {
	key := c.SortKey
	if key == "" {
		key = SortByCreated
	}
	desc := c.SortDir == Descending

	less := lessFunc(key)
	sort.SliceStable(tickets, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return less(tickets[i], tickets[j])
	})
}

// lessFunc returns the ascending comparison for a sort key.
func lessFunc(key SortKey) func(a, b model.Ticket) bool {
	switch key {
	case SortByUrgency:
		return func(a, b model.Ticket) bool { return a.Urgency.Rank() < b.Urgency.Rank() }
	case SortByID:
		return func(a, b model.Ticket) bool { return a.ID < b.ID }
	case SortByTitle:
		return func(a, b model.Ticket) bool { return fold.String(a.Title) < fold.String(b.Title) }
	case SortByDescription:
		return func(a, b model.Ticket) bool { return fold.String(a.Description) < fold.String(b.Description) }
	case SortByStatus:
		return func(a, b model.Ticket) bool { return a.Status < b.Status }
	default: // SortByCreated; zero times sort below every valid timestamp
		return func(a, b model.Ticket) bool { return a.CreatedTime().Before(b.CreatedTime()) }
	}
}
