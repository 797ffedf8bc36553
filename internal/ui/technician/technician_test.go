// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package technician

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/pipeline"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

func testTickets() []model.Ticket {
	return []model.Ticket{
		{ID: 1, Title: "VPN down", Status: model.StatusOpen, Urgency: model.UrgencyHigh, CreatedAt: "2026-03-01T10:00:00Z"},
		{ID: 2, Title: "New mouse", Status: model.StatusClosed, Urgency: model.UrgencyLow, CreatedAt: "2026-03-02T10:00:00Z"},
		{ID: 3, Title: "Server room AC", Status: model.StatusInProgress, Urgency: model.UrgencyCritical, CreatedAt: "2026-03-03T10:00:00Z"},
		{ID: 4, Title: "Printer jam", Status: model.StatusOpen, Urgency: model.UrgencyNormal, CreatedAt: "2026-03-04T10:00:00Z"},
	}
}

func newTestModel(client *api.Client) Model {
	m := New(styles.New("dark"), client, 10)
	m.SetSize(120, 40)
	return m
}

func loaded(m Model, tickets []model.Ticket) Model {
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: tickets})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStatsFromUnfilteredList(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())

	assert.Equal(t, Stats{Total: 4, Open: 2, InProgress: 1, Closed: 1, Urgent: 2}, m.stats)

	// Filtering the table must not move the cards.
	m, _ = m.Update(key("f"))
	require.Equal(t, model.UrgencyLow, m.view.Criteria().UrgencyFilter)
	assert.Equal(t, 1, m.page.Filtered)
	assert.Equal(t, Stats{Total: 4, Open: 2, InProgress: 1, Closed: 1, Urgent: 2}, m.stats)
}

func TestColumnSortToggle(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())

	m, _ = m.Update(key("5"))
	require.Equal(t, pipeline.SortByUrgency, m.view.Criteria().SortKey)
	require.Equal(t, pipeline.Ascending, m.view.Criteria().SortDir)
	assert.Equal(t, 2, m.page.Tickets[0].ID) // low first

	m, _ = m.Update(key("5"))
	require.Equal(t, pipeline.Descending, m.view.Criteria().SortDir)
	assert.Equal(t, 3, m.page.Tickets[0].ID) // critical first
}

func TestSelectionSurvivesResort(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())

	// Default sort is newest first: cursor 0 is ticket 4.
	m, _ = m.Update(key(" "))
	assert.True(t, m.selected[4])

	m, _ = m.Update(key("1"))
	assert.True(t, m.selected[4], "selection keyed by id, not row position")
}

func TestSelectAllOnPageToggles(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())

	m, _ = m.Update(key("a"))
	assert.Len(t, m.selected, 4)

	m, _ = m.Update(key("a"))
	assert.Empty(t, m.selected)
}

func TestStatusCycleUpdatesAndRefetches(t *testing.T) {
	var mu sync.Mutex
	var puts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			puts = append(puts, r.URL.Path+" "+body["status"])
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "tickets": []any{}})
	}))
	defer srv.Close()

	m := loaded(newTestModel(api.NewClient(srv.URL, nil)), testTickets())

	// Cursor 0 is ticket 4 (newest first), currently open.
	m, cmd := m.Update(key("s"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(updatedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	mu.Lock()
	require.Equal(t, []string{"/tickets/4/status in_progress"}, puts)
	mu.Unlock()

	m, cmd = m.Update(msg)
	assert.Equal(t, StateLoading, m.state, "successful update reloads from the server")
	assert.NotNil(t, cmd)
}

func TestBulkDeleteReportsFailedIDs(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())
	m.selected = map[int]bool{1: true, 2: true, 3: true}

	result := api.BulkDeleteResult{
		Succeeded: []int{1, 3},
		Failed: []api.BulkDeleteFailure{
			{ID: 2, Err: &api.RequestError{Status: 404, Kind: api.KindNotFound, Message: "gone"}},
		},
	}
	m, cmd := m.Update(deletedMsg{result: result})

	assert.Equal(t, map[int]bool{2: true}, m.selected, "failed ids stay selected")
	assert.Contains(t, m.warn, "#2")
	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestBulkDeleteReportSurvivesRefetch(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())
	m.selected = map[int]bool{1: true, 2: true}

	result := api.BulkDeleteResult{
		Succeeded: []int{1},
		Failed: []api.BulkDeleteFailure{
			{ID: 2, Err: &api.RequestError{Status: 500, Kind: api.KindServer, Message: "boom"}},
		},
	}
	m, _ = m.Update(deletedMsg{result: result})
	require.Equal(t, StateLoading, m.state)

	// The reload that follows the delete must not wipe the report.
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()[1:]})
	require.Equal(t, StateTable, m.state)
	assert.Contains(t, m.warn, "#2")
	assert.Contains(t, m.View(), "#2", "failed ids stay visible on the reloaded table")
}

func TestBulkDeleteConfirmationGate(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())

	// No selection: x does nothing.
	m, _ = m.Update(key("x"))
	assert.Equal(t, StateTable, m.state)

	m, _ = m.Update(key(" "))
	m, _ = m.Update(key("x"))
	require.Equal(t, StateConfirm, m.state)

	// n backs out without deleting.
	m, cmd := m.Update(key("n"))
	assert.Equal(t, StateTable, m.state)
	assert.Nil(t, cmd)
	assert.Len(t, m.selected, 1)
}

func TestFetchFailureSurfacedWithRetry(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})

	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, err: api.ErrNetwork})
	require.Equal(t, StateError, m.state)
	assert.NotEmpty(t, m.errMsg)

	m, cmd := m.Update(key("r"))
	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestSelectionPrunedAfterRefetch(t *testing.T) {
	m := loaded(newTestModel(api.NewClient("http://127.0.0.1:1", nil)), testTickets())
	m.selected = map[int]bool{1: true, 2: true}

	// Ticket 2 vanished server-side.
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()[:1]})

	assert.Equal(t, map[int]bool{1: true}, m.selected)
}

func TestNextStatusWraps(t *testing.T) {
	assert.Equal(t, model.StatusInProgress, nextStatus(model.StatusOpen))
	assert.Equal(t, model.StatusOpen, nextStatus(model.StatusClosed))
	assert.Equal(t, model.UrgencyLow, nextUrgency(model.UrgencyCritical))
}
