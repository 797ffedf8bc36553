// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package employee

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

func testTickets() []model.Ticket {
	return []model.Ticket{
		{ID: 1, Title: "VPN down", Description: "Cannot connect", Status: model.StatusOpen, Urgency: model.UrgencyHigh, CreatedAt: "2026-03-01T10:00:00Z"},
		{ID: 2, Title: "New mouse", Description: "Left button sticks", Status: model.StatusClosed, Urgency: model.UrgencyLow, CreatedAt: "2026-03-02T10:00:00Z"},
		{ID: 3, Title: "Password reset", Description: "Locked out", Status: model.StatusOpen, Urgency: model.UrgencyCritical, CreatedAt: "2026-03-03T10:00:00Z"},
	}
}

func newTestModel(client *api.Client) Model {
	m := New(styles.New("dark"), client, 6)
	m.SetSize(100, 30)
	return m
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFetchPopulatesList(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})

	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	assert.Equal(t, StateList, m.state)
	// Default sort is newest first.
	require.Len(t, m.page.Tickets, 3)
	assert.Equal(t, 3, m.page.Tickets[0].ID)
	assert.Equal(t, 1, m.page.Tickets[2].ID)
}

func TestStaleFetchDropped(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})
	firstSeq := m.fetchSeq

	// A refresh starts a second fetch before the first returns.
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: firstSeq, tickets: testTickets()})

	// The stale response must not leave the loading state.
	assert.Equal(t, StateLoading, m.state)
	assert.Empty(t, m.tickets)

	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()[:1]})
	assert.Equal(t, StateList, m.state)
	assert.Len(t, m.tickets, 1)
}

func TestFetchErrorOffersRetry(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})

	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, err: api.ErrNetwork})
	assert.Equal(t, StateError, m.state)
	assert.NotEmpty(t, m.errMsg)

	m, cmd := m.Update(key("r"))
	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestSearchFiltersCards(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	m, _ = m.Update(key("/"))
	require.Equal(t, StateSearch, m.state)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("vpn")})

	assert.Equal(t, 1, m.page.Filtered)
	assert.Equal(t, 1, m.page.Tickets[0].ID)

	m, _ = m.Update(key("enter"))
	assert.Equal(t, StateList, m.state)
}

func TestStatusFilterCycles(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	m, _ = m.Update(key("f"))
	assert.Equal(t, model.StatusOpen, m.view.Criteria().StatusFilter)
	assert.Equal(t, 2, m.page.Filtered)

	// Cycling past the last status clears the filter again.
	for i := 0; i < 4; i++ {
		m, _ = m.Update(key("f"))
	}
	assert.Equal(t, model.Status(""), m.view.Criteria().StatusFilter)
	assert.Equal(t, 3, m.page.Filtered)
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}))
	defer srv.Close()

	m := newTestModel(api.NewClient(srv.URL, nil))
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	m, _ = m.Update(key("c"))
	require.Equal(t, StateCreate, m.state)

	// Empty title: submit must fail locally.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, "Title is required", m.form.errMsg)
	assert.False(t, m.form.submitting)
}

func TestCreateSuccessTriggersRefetch(t *testing.T) {
	var listCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/tickets":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"ticket":  map[string]any{"id": 42, "title": "Broken screen", "status": "open", "urgency": "high"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/tickets":
			listCalls.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "tickets": []any{}})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	m := newTestModel(api.NewClient(srv.URL, nil))
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	m, _ = m.Update(key("c"))
	m.form.title.SetValue("Broken screen")
	m.form.description.SetValue("Cracked in transit")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	require.True(t, m.form.submitting)

	created, ok := cmd().(createdMsg)
	require.True(t, ok)
	require.NoError(t, created.err)
	assert.Equal(t, 42, created.ticket.ID)

	// The creation result puts the view back into loading and refetches;
	// the list is rebuilt from the server, not patched locally.
	m, cmd = m.Update(created)
	assert.Equal(t, StateLoading, m.state)
	require.NotNil(t, cmd)
	drainBatch(t, cmd)
	assert.Equal(t, int32(1), listCalls.Load())
	assert.Contains(t, m.notice, "#42")
}

func TestDetailOpensSelectedTicket(t *testing.T) {
	m := newTestModel(api.NewClient("http://127.0.0.1:1", nil))
	m, _ = m.Update(Refetch{})
	m, _ = m.Update(ticketsMsg{seq: m.fetchSeq, tickets: testTickets()})

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))

	assert.Equal(t, StateDetail, m.state)
	assert.Equal(t, 2, m.detail.ticket.ID)

	m, _ = m.Update(key("esc"))
	assert.Equal(t, StateList, m.state)
}

func TestSortedHistoryNewestFirst(t *testing.T) {
	entries := []model.HistoryEntry{
		{UpdatedAt: "2026-01-01T00:00:00Z", Update: "opened"},
		{UpdatedAt: "2026-01-03T00:00:00Z", Update: "escalated"},
		{UpdatedAt: "not-a-date", Update: "imported"},
	}

	got := sortedHistory(entries)
	assert.Equal(t, "escalated", got[0].Update)
	assert.Equal(t, "imported", got[2].Update)
	// Input order untouched.
	assert.Equal(t, "opened", entries[0].Update)
}

// drainBatch executes every command in a possibly batched tea.Cmd so side
// effects (HTTP calls) actually run.
func drainBatch(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				c()
			}
		}
	}
}
