// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline implements the client-side list processing shared by the
// ticket views.
package pipeline

import "github.com/jeranaias/helpdesk-tui/internal/model"

// =============================================================================
// VIEW STATE
// =============================================================================

// ViewState wraps Criteria with the page-reset rules the views depend on:
// any change to search, filter, or sort resets the current page to 1, and
// page navigation is clamped against the last applied result.
type ViewState struct {
	criteria Criteria

	// lastTotalPages bounds NextPage between applies. Starts at 1 so a
	// fresh state cannot navigate anywhere.
	lastTotalPages int
}

// NewViewState returns a ViewState with the given fixed page size, sorted
// by creation time descending (newest first), on page one.
func NewViewState(pageSize int) *ViewState {
	return &ViewState{
		criteria: Criteria{
			SortKey:  SortByCreated,
			SortDir:  Descending,
			Page:     1,
			PageSize: pageSize,
		},
		lastTotalPages: 1,
	}
}

// Criteria returns a copy of the current criteria.
func (v *ViewState) Criteria() Criteria {
	return v.criteria
}

// Apply runs the pipeline with the current criteria, records the resulting
// page bounds, and re-clamps the current page. Shrinking the input (for
// example after a bulk delete) can pull the page back into range.
func (v *ViewState) Apply(tickets []model.Ticket) Page {
	page := Apply(tickets, v.criteria)
	v.lastTotalPages = page.TotalPages
	v.criteria.Page = page.Number
	return page
}

// =============================================================================
// CRITERIA MUTATORS (all reset the page to 1)
// =============================================================================

// SetSearch replaces the search text.
func (v *ViewState) SetSearch(s string) {
	if v.criteria.Search == s {
		return
	}
	v.criteria.Search = s
	v.criteria.Page = 1
}

// SetStatusFilter sets the status filter; empty clears it.
func (v *ViewState) SetStatusFilter(s model.Status) {
	if v.criteria.StatusFilter == s {
		return
	}
	v.criteria.StatusFilter = s
	v.criteria.Page = 1
}

// SetUrgencyFilter sets the urgency filter; empty clears it.
func (v *ViewState) SetUrgencyFilter(u model.Urgency) {
	if v.criteria.UrgencyFilter == u {
		return
	}
	v.criteria.UrgencyFilter = u
	v.criteria.Page = 1
}

// SetSort sets the sort key and direction.
func (v *ViewState) SetSort(key SortKey, dir Direction) {
	if v.criteria.SortKey == key && v.criteria.SortDir == dir {
		return
	}
	v.criteria.SortKey = key
	v.criteria.SortDir = dir
	v.criteria.Page = 1
}

// ToggleSort sorts by the given key, flipping the direction when the key is
// already active. New keys start ascending, matching the table headers.
func (v *ViewState) ToggleSort(key SortKey) {
	if v.criteria.SortKey == key {
		if v.criteria.SortDir == Ascending {
			v.criteria.SortDir = Descending
		} else {
			v.criteria.SortDir = Ascending
		}
	} else {
		v.criteria.SortKey = key
		v.criteria.SortDir = Ascending
	}
	v.criteria.Page = 1
}

// =============================================================================
// PAGE NAVIGATION (never touches the filtered/sorted set)
// =============================================================================

// NextPage advances one page, bounded by the last applied result.
func (v *ViewState) NextPage() {
	v.criteria.Page = ClampPage(v.criteria.Page+1, v.lastTotalPages)
}

// PrevPage goes back one page, bounded at 1.
func (v *ViewState) PrevPage() {
	v.criteria.Page = ClampPage(v.criteria.Page-1, v.lastTotalPages)
}

// SetPage jumps to a page, clamped against the last applied result.
func (v *ViewState) SetPage(n int) {
	v.criteria.Page = ClampPage(n, v.lastTotalPages)
}
