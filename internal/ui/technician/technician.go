// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package technician provides the technician ticket dashboard.
package technician

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/pipeline"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// requestTimeout bounds the ticket calls issued from this view.
const requestTimeout = 15 * time.Second

// =============================================================================
// VIEW STATE
// =============================================================================

// State represents the current state of the technician view.
type State int

const (
	StateLoading State = iota // Fetch in flight
	StateTable                // Browsing the table
	StateSearch               // Search input focused
	StateConfirm              // Bulk delete confirmation
	StateError                // Fetch failed, retry offered
)

// =============================================================================
// MESSAGES
// =============================================================================

// Refetch asks the view to reload its ticket list.
type Refetch struct{}

// ticketsMsg delivers a fetch result, tagged with the sequence number of
// the request that produced it.
type ticketsMsg struct {
	seq     int
	tickets []model.Ticket
	err     error
}

// Failure exposes the fetch error to the root model's session-expiry check.
func (m ticketsMsg) Failure() error { return m.err }

// updatedMsg delivers the result of a per-row status/urgency change.
type updatedMsg struct {
	id  int
	err error
}

// Failure exposes the update error to the root model.
func (m updatedMsg) Failure() error { return m.err }

// deletedMsg delivers the settled outcome of a bulk delete.
type deletedMsg struct {
	result api.BulkDeleteResult
}

// Failure surfaces the first per-id error so the root model can detect an
// expired session even when other deletes went through.
func (m deletedMsg) Failure() error {
	if len(m.result.Failed) == 0 {
		return nil
	}
	return m.result.Failed[0].Err
}

// =============================================================================
// MODEL
// =============================================================================

// Stats is the summary rendered as stat cards, computed from the full
// unfiltered list so the numbers never shift with the table's criteria.
type Stats struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
	Urgent     int // high plus critical
}

// Model is the Bubble Tea model for the technician dashboard.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	width    int
	height   int
	identity string

	state State

	tickets []model.Ticket
	page    pipeline.Page
	view    *pipeline.ViewState
	stats   Stats

	// fetchSeq increments per fetch; older responses are dropped.
	fetchSeq int

	// cursor indexes into page.Tickets; selection is keyed by ticket id
	// so it survives re-sorting and page flips.
	cursor   int
	selected map[int]bool

	search  textinput.Model
	spinner spinner.Model

	// errMsg is a fetch failure shown in the error state; warn reports
	// a failed mutation and survives the refetch that follows it.
	errMsg string
	warn   string
	notice string
}

// New creates the technician dashboard model. pageSize comes from
// configuration; the stock value shows ten rows per page.
func New(theme *styles.Theme, client *api.Client, pageSize int) Model {
	search := textinput.New()
	search.Placeholder = "Search tickets..."
	search.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		theme:    theme,
		client:   client,
		state:    StateLoading,
		view:     pipeline.NewViewState(pageSize),
		selected: make(map[int]bool),
		search:   search,
		spinner:  sp,
	}
}

// Init starts the spinner and requests the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return Refetch{} })
}

// SetSize records the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetIdentity records the signed-in account line shown in the header.
func (m *Model) SetIdentity(identity string) {
	m.identity = identity
}

// fetch issues the list request tagged with the next sequence number.
func (m *Model) fetch() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tickets, err := client.ListTickets(ctx)
		return ticketsMsg{seq: seq, tickets: tickets, err: err}
	}
}

// reapply reruns the pipeline and recomputes the stats.
func (m *Model) reapply() {
	m.page = m.view.Apply(m.tickets)
	m.stats = computeStats(m.tickets)
	if m.cursor >= len(m.page.Tickets) {
		m.cursor = len(m.page.Tickets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// computeStats tallies the unfiltered list.
func computeStats(tickets []model.Ticket) Stats {
	s := Stats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case model.StatusOpen:
			s.Open++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusClosed:
			s.Closed++
		}
		if t.Urgency.Rank() >= model.UrgencyHigh.Rank() {
			s.Urgent++
		}
	}
	return s
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case Refetch:
		m.state = StateLoading
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)

	case ticketsMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateError
			m.errMsg = presentError(msg.err, "Could not load the ticket queue.")
			return m, nil
		}
		m.tickets = msg.tickets
		m.errMsg = ""
		m.pruneSelection()
		m.reapply()
		if m.state == StateLoading || m.state == StateError {
			m.state = StateTable
		}
		return m, nil

	case updatedMsg:
		if msg.err != nil {
			m.notice = ""
			m.warn = presentError(msg.err, fmt.Sprintf("Could not update ticket #%d.", msg.id))
			return m, nil
		}
		m.warn = ""
		m.state = StateLoading
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)

	case deletedMsg:
		// Only ids the server confirmed leave the selection; failures
		// stay selected and are called out.
		for _, id := range msg.result.Succeeded {
			delete(m.selected, id)
		}
		if msg.result.AllSucceeded() {
			m.notice = fmt.Sprintf("Deleted %d tickets.", len(msg.result.Succeeded))
			m.warn = ""
		} else {
			m.notice = ""
			m.warn = fmt.Sprintf("Could not delete tickets %s.", formatIDs(msg.result.FailedIDs()))
		}
		m.state = StateLoading
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// pruneSelection drops selected ids that no longer exist on the server.
func (m *Model) pruneSelection() {
	alive := make(map[int]bool, len(m.tickets))
	for _, t := range m.tickets {
		alive[t.ID] = true
	}
	for id := range m.selected {
		if !alive[id] {
			delete(m.selected, id)
		}
	}
}

// handleKey dispatches key input by state.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateError:
		if msg.String() == "r" {
			m.state = StateLoading
			fetchCmd := m.fetch()
			return m, tea.Batch(m.spinner.Tick, fetchCmd)
		}
		return m, nil
	case StateLoading:
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.page.Tickets)-1 {
			m.cursor++
		}
	case "left", "h":
		m.view.PrevPage()
		m.reapply()
	case "right", "l":
		m.view.NextPage()
		m.reapply()

	case "/":
		m.state = StateSearch
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.view.SetUrgencyFilter(nextUrgencyFilter(m.view.Criteria().UrgencyFilter))
		m.reapply()

	// Column sorts. Repeating a key flips the direction.
	case "1":
		m.view.ToggleSort(pipeline.SortByID)
		m.reapply()
	case "2":
		m.view.ToggleSort(pipeline.SortByTitle)
		m.reapply()
	case "3":
		m.view.ToggleSort(pipeline.SortByDescription)
		m.reapply()
	case "4":
		m.view.ToggleSort(pipeline.SortByStatus)
		m.reapply()
	case "5":
		m.view.ToggleSort(pipeline.SortByUrgency)
		m.reapply()
	case "6":
		m.view.ToggleSort(pipeline.SortByCreated)
		m.reapply()

	case " ":
		if t, ok := m.current(); ok {
			if m.selected[t.ID] {
				delete(m.selected, t.ID)
			} else {
				m.selected[t.ID] = true
			}
		}
	case "a":
		m.toggleSelectPage()

	case "s":
		if t, ok := m.current(); ok {
			return m.updateRow(t.ID, nextStatus(t.Status), t.Urgency)
		}
	case "u":
		if t, ok := m.current(); ok {
			return m.updateRow(t.ID, t.Status, nextUrgency(t.Urgency))
		}

	case "x", "delete":
		if len(m.selected) > 0 {
			m.state = StateConfirm
		}

	case "r":
		m.state = StateLoading
		m.notice = ""
		m.warn = ""
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)
	}

	return m, nil
}

// current returns the ticket under the cursor.
func (m Model) current() (model.Ticket, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Tickets) {
		return model.Ticket{}, false
	}
	return m.page.Tickets[m.cursor], true
}

// toggleSelectPage selects every row on the current page, or clears them
// all when every row is already selected.
func (m *Model) toggleSelectPage() {
	all := len(m.page.Tickets) > 0
	for _, t := range m.page.Tickets {
		if !m.selected[t.ID] {
			all = false
			break
		}
	}
	for _, t := range m.page.Tickets {
		if all {
			delete(m.selected, t.ID)
		} else {
			m.selected[t.ID] = true
		}
	}
}

// updateRow fires a status/urgency change for one ticket.
func (m Model) updateRow(id int, status model.Status, urgency model.Urgency) (Model, tea.Cmd) {
	m.notice = ""
	m.warn = ""
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return updatedMsg{id: id, err: client.UpdateTicketStatus(ctx, id, status, urgency)}
	}
}

// handleSearchKey routes input while the search bar is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateTable
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearch(strings.TrimSpace(m.search.Value()))
	m.reapply()
	return m, cmd
}

// handleConfirmKey handles the bulk delete confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		ids := make([]int, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		m.state = StateLoading
		client := m.client
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return deletedMsg{result: client.BulkDeleteTickets(ctx, ids)}
		})
	case "n", "esc":
		m.state = StateTable
	}
	return m, nil
}

// =============================================================================
// CYCLES
// =============================================================================

// nextStatus advances one step through the ticket lifecycle, wrapping
// from closed back to open.
func nextStatus(s model.Status) model.Status {
	order := []model.Status{
		model.StatusOpen, model.StatusInProgress, model.StatusResolved, model.StatusClosed,
	}
	for i, v := range order {
		if v == s {
			return order[(i+1)%len(order)]
		}
	}
	return model.StatusOpen
}

// nextUrgency advances one urgency step, wrapping from critical to low.
func nextUrgency(u model.Urgency) model.Urgency {
	order := []model.Urgency{
		model.UrgencyLow, model.UrgencyNormal, model.UrgencyHigh, model.UrgencyCritical,
	}
	for i, v := range order {
		if v == u {
			return order[(i+1)%len(order)]
		}
	}
	return model.UrgencyNormal
}

// nextUrgencyFilter cycles the urgency filter: all, then each urgency in
// ascending rank order.
func nextUrgencyFilter(current model.Urgency) model.Urgency {
	order := []model.Urgency{
		"", model.UrgencyLow, model.UrgencyNormal, model.UrgencyHigh, model.UrgencyCritical,
	}
	for i, v := range order {
		if v == current {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

// formatIDs renders ids as "#2, #7".
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

// presentError converts an API error to a user-facing line.
func presentError(err error, fallback string) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.chrome(m.spinner.View() + " Loading ticket queue...")
	case StateError:
		body := m.theme.ErrorText.Render(m.errMsg) + "\n\n" +
			m.theme.MutedText.Render("Press r to retry.")
		return m.chrome(body)
	case StateConfirm:
		return m.chrome(m.renderConfirm())
	}
	return m.chrome(m.renderTable())
}

var tableShortcuts = []components.Shortcut{
	{Key: "↑/↓", Desc: "row"},
	{Key: "←/→", Desc: "page"},
	{Key: "1-6", Desc: "sort"},
	{Key: "/", Desc: "search"},
	{Key: "f", Desc: "urgency filter"},
	{Key: "space", Desc: "select"},
	{Key: "a", Desc: "select page"},
	{Key: "s/u", Desc: "cycle status/urgency"},
	{Key: "x", Desc: "delete selected"},
}

// chrome wraps a body in the shared header and status bar.
func (m Model) chrome(body string) string {
	header := components.Header(m.theme, m.width, "Ticket Queue", m.summaryLine(), m.identity)
	bar := components.StatusBar(m.theme, m.width, tableShortcuts)

	inner := lipgloss.NewStyle().Padding(1, 2).Render(body)
	gap := m.height - lipgloss.Height(header) - lipgloss.Height(inner) - 1
	if gap < 0 {
		gap = 0
	}
	return header + "\n" + inner + strings.Repeat("\n", gap) + bar
}

// summaryLine describes the active criteria for the header subtitle.
func (m Model) summaryLine() string {
	c := m.view.Criteria()
	parts := []string{fmt.Sprintf("%d of %d tickets", m.page.Filtered, m.page.Total)}
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Search))
	}
	if c.UrgencyFilter != "" {
		parts = append(parts, "urgency "+c.UrgencyFilter.DisplayName())
	}
	if len(m.selected) > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", len(m.selected)))
	}
	return strings.Join(parts, " · ")
}

// renderConfirm renders the bulk delete confirmation overlay.
func (m Model) renderConfirm() string {
	body := m.theme.OverlayTitle.Render("Delete tickets") + "\n\n" +
		fmt.Sprintf("Permanently delete %d selected tickets?", len(m.selected)) + "\n\n" +
		m.theme.FormHelp.Render("y confirm · n cancel")
	return m.theme.Overlay.Render(body)
}
