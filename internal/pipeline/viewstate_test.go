// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

func manyTickets(n int) []model.Ticket {
	out := make([]model.Ticket, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Ticket{
			ID:        i,
			Title:     fmt.Sprintf("Ticket %d", i),
			Status:    model.StatusOpen,
			Urgency:   model.UrgencyNormal,
			CreatedAt: fmt.Sprintf("2024-01-%02dT00:00:00Z", (i%28)+1),
		})
	}
	return out
}

func TestCriteriaChangesResetPage(t *testing.T) {
	tickets := manyTickets(30)

	vs := NewViewState(6)
	vs.Apply(tickets)
	vs.NextPage()
	vs.NextPage()
	require.Equal(t, 3, vs.Criteria().Page)

	vs.SetSearch("Ticket")
	assert.Equal(t, 1, vs.Criteria().Page, "search change resets page")

	vs.Apply(tickets)
	vs.NextPage()
	vs.SetStatusFilter(model.StatusOpen)
	assert.Equal(t, 1, vs.Criteria().Page, "filter change resets page")

	vs.Apply(tickets)
	vs.NextPage()
	vs.SetSort(SortByUrgency, Descending)
	assert.Equal(t, 1, vs.Criteria().Page, "sort change resets page")

	vs.Apply(tickets)
	vs.NextPage()
	vs.ToggleSort(SortByUrgency)
	assert.Equal(t, 1, vs.Criteria().Page, "sort direction flip resets page")
}

func TestUnchangedCriteriaKeepsPage(t *testing.T) {
	vs := NewViewState(6)
	vs.Apply(manyTickets(30))
	vs.NextPage()

	// Re-setting the identical value is not a change.
	vs.SetSearch("")
	vs.SetStatusFilter("")
	vs.SetSort(SortByCreated, Descending)
	assert.Equal(t, 2, vs.Criteria().Page)
}

func TestPageNavigationOnlyMovesWithinBounds(t *testing.T) {
	tickets := manyTickets(13)
	vs := NewViewState(6)
	page := vs.Apply(tickets)
	require.Equal(t, 3, page.TotalPages)

	vs.PrevPage()
	assert.Equal(t, 1, vs.Criteria().Page)

	vs.NextPage()
	vs.NextPage()
	vs.NextPage()
	vs.NextPage()
	assert.Equal(t, 3, vs.Criteria().Page)

	vs.SetPage(99)
	assert.Equal(t, 3, vs.Criteria().Page)
}

func TestPageChangeDoesNotChangeFilteredSet(t *testing.T) {
	tickets := manyTickets(13)
	vs := NewViewState(6)
	first := vs.Apply(tickets)

	vs.NextPage()
	second := vs.Apply(tickets)

	assert.Equal(t, first.Filtered, second.Filtered)
	assert.Equal(t, first.TotalPages, second.TotalPages)
	assert.NotEqual(t, first.Number, second.Number)
}

func TestApplyReclampsAfterShrink(t *testing.T) {
	vs := NewViewState(6)
	vs.Apply(manyTickets(30))
	vs.SetPage(5)
	require.Equal(t, 5, vs.Criteria().Page)

	// Most tickets were deleted; the page pulls back into range.
	page := vs.Apply(manyTickets(4))
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, vs.Criteria().Page)
	assert.Len(t, page.Tickets, 4)
}

func TestToggleSortNewKeyStartsAscending(t *testing.T) {
	vs := NewViewState(10)
	vs.ToggleSort(SortByID)
	assert.Equal(t, SortByID, vs.Criteria().SortKey)
	assert.Equal(t, Ascending, vs.Criteria().SortDir)

	vs.ToggleSort(SortByID)
	assert.Equal(t, Descending, vs.Criteria().SortDir)
}
