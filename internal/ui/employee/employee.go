// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package employee provides the employee ticket dashboard.
package employee

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

// State represents the current state of the employee view.
type State int

const (
	StateLoading State = iota // Initial fetch in flight
	StateList                 // Browsing the ticket list
	StateSearch               // Search input focused
	StateCreate               // Creation form open
	StateDetail               // Ticket inspector open
	StateError                // Fetch failed, retry offered
)

// =============================================================================
// MESSAGES
// =============================================================================

// Refetch asks the view to reload its ticket list. The root model sends it
// after events that invalidate the local copy.
type Refetch struct{}

// ticketsMsg delivers a fetch result. seq pairs the response with the
// request that produced it so stale responses are dropped.
type ticketsMsg struct {
	seq     int
	tickets []model.Ticket
	err     error
}

// Failure exposes the fetch error to the root model's session-expiry check.
func (m ticketsMsg) Failure() error { return m.err }

// createdMsg delivers the result of a ticket creation.
type createdMsg struct {
	ticket model.Ticket
	err    error
}

// Failure exposes the creation error to the root model.
func (m createdMsg) Failure() error { return m.err }

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the employee dashboard.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	width    int
	height   int
	identity string

	state State

	// Raw server copy plus the derived page currently on screen.
	tickets []model.Ticket
	page    pipeline.Page
	view    *pipeline.ViewState

	// fetchSeq increments per fetch; responses carrying an older value
	// are dropped so a slow first fetch cannot clobber a newer one.
	fetchSeq int

	// selected indexes into page.Tickets.
	selected int

	search  textinput.Model
	spinner spinner.Model
	form    createForm
	detail  detailView

	errMsg string
	notice string
}

// New creates the employee dashboard model. pageSize comes from
// configuration; the stock value shows six cards per page.
func New(theme *styles.Theme, client *api.Client, pageSize int) Model {
	search := textinput.New()
	search.Placeholder = "Search tickets..."
	search.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		theme:   theme,
		client:  client,
		state:   StateLoading,
		view:    pipeline.NewViewState(pageSize),
		search:  search,
		spinner: sp,
		form:    newCreateForm(),
		detail:  newDetailView(theme),
	}
}

// Init starts the spinner and requests the initial fetch. The fetch is
// routed through Update so the sequence bump lands on the retained model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return Refetch{} })
}

// SetSize records the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.detail.setSize(width, height)
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

// reapply reruns the pipeline over the cached tickets and keeps the
// selection inside the new page.
func (m *Model) reapply() {
	m.page = m.view.Apply(m.tickets)
	if m.selected >= len(m.page.Tickets) {
		m.selected = len(m.page.Tickets) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
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
			// A newer fetch is already in flight.
			return m, nil
		}
		if msg.err != nil {
			m.state = StateError
			m.errMsg = presentError(msg.err, "Could not load your tickets.")
			return m, nil
		}
		m.tickets = msg.tickets
		m.errMsg = ""
		m.reapply()
		if m.state == StateLoading || m.state == StateError {
			m.state = StateList
		}
		return m, nil

	case createdMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.errMsg = presentError(msg.err, "Could not create the ticket.")
			return m, nil
		}
		m.state = StateLoading
		m.form = newCreateForm()
		m.notice = fmt.Sprintf("Ticket #%d created.", msg.ticket.ID)
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key input by state.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateCreate:
		return m.handleCreateKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
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
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.page.Tickets)-1 {
			m.selected++
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
		m.view.SetStatusFilter(nextStatusFilter(m.view.Criteria().StatusFilter))
		m.reapply()

	case "s":
		m.view.ToggleSort(pipeline.SortByCreated)
		m.reapply()
	case "u":
		m.view.ToggleSort(pipeline.SortByUrgency)
		m.reapply()

	case "c":
		m.state = StateCreate
		m.notice = ""
		m.form = newCreateForm()
		m.form.focusFirst()
		return m, textinput.Blink

	case "enter":
		if len(m.page.Tickets) > 0 {
			m.state = StateDetail
			m.detail.show(m.page.Tickets[m.selected])
		}

	case "r":
		m.state = StateLoading
		m.notice = ""
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)
	}

	return m, nil
}

// handleSearchKey routes input while the search bar is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateList
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearch(strings.TrimSpace(m.search.Value()))
	m.reapply()
	return m, cmd
}

// handleCreateKey routes input while the creation form is open.
func (m Model) handleCreateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = StateList
		return m, nil
	case "tab", "down":
		m.form.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.form.cycleFocus(-1)
		return m, nil
	case "left", "right":
		if m.form.focus == formUrgency {
			m.form.cycleUrgency(msg.String())
			return m, nil
		}
	case "enter":
		if m.form.focus != formDescription {
			return m.submitCreate()
		}
	case "ctrl+s":
		return m.submitCreate()
	}
	cmd := m.form.updateInputs(msg)
	return m, cmd
}

// submitCreate validates the form and fires the creation request.
// Validation failures never reach the network.
func (m Model) submitCreate() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.form.title.Value())
	description := strings.TrimSpace(m.form.description.Value())
	if err := model.ValidateNewTicket(title, description); err != nil {
		m.form.errMsg = validationReason(err)
		return m, nil
	}

	m.form.errMsg = ""
	m.form.submitting = true
	urgency := m.form.urgency
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ticket, err := client.CreateTicket(ctx, title, description, urgency)
		return createdMsg{ticket: ticket, err: err}
	}
}

// handleDetailKey routes input while the inspector is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.state = StateList
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.update(msg)
	return m, cmd
}

// nextStatusFilter cycles the status filter: all, then each status in the
// fixed lifecycle order.
func nextStatusFilter(current model.Status) model.Status {
	order := []model.Status{
		"", model.StatusOpen, model.StatusInProgress, model.StatusResolved, model.StatusClosed,
	}
	for i, s := range order {
		if s == current {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.chrome(m.spinner.View() + " Loading tickets...")
	case StateError:
		body := m.theme.ErrorText.Render(m.errMsg) + "\n\n" +
			m.theme.MutedText.Render("Press r to retry.")
		return m.chrome(body)
	case StateCreate:
		return m.chrome(m.form.render(m.theme))
	case StateDetail:
		return m.chrome(m.detail.render())
	}
	return m.chrome(m.renderList())
}

var listShortcuts = []components.Shortcut{
	{Key: "↑/↓", Desc: "select"},
	{Key: "←/→", Desc: "page"},
	{Key: "/", Desc: "search"},
	{Key: "f", Desc: "filter"},
	{Key: "s/u", Desc: "sort"},
	{Key: "c", Desc: "new ticket"},
	{Key: "enter", Desc: "details"},
	{Key: "r", Desc: "refresh"},
}

// chrome wraps a body in the shared header and status bar.
func (m Model) chrome(body string) string {
	header := components.Header(m.theme, m.width, "My Tickets", m.summaryLine(), m.identity)
	bar := components.StatusBar(m.theme, m.width, listShortcuts)

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
	parts := []string{fmt.Sprintf("%d tickets", m.page.Filtered)}
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Search))
	}
	if c.StatusFilter != "" {
		parts = append(parts, "status "+c.StatusFilter.DisplayName())
	}
	return strings.Join(parts, " · ")
}

// renderList renders the card list with pagination footer.
func (m Model) renderList() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(m.theme.SuccessText.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.state == StateSearch || m.view.Criteria().Search != "" {
		b.WriteString(m.theme.FormLabel.Render("Search: "))
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if len(m.page.Tickets) == 0 {
		b.WriteString(m.theme.MutedText.Render("No tickets match."))
		return b.String()
	}

	cardWidth := m.width - 8
	for i, t := range m.page.Tickets {
		b.WriteString(m.renderCard(t, i == m.selected, cardWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("Page " + components.PageIndicator(m.page.Number, m.page.TotalPages)))
	return b.String()
}

// renderCard renders one ticket card.
func (m Model) renderCard(t model.Ticket, selected bool, width int) string {
	style := m.theme.Card
	if selected {
		style = m.theme.CardSelected
	}

	title := m.theme.CardTitle.Render(
		components.Truncate(fmt.Sprintf("#%d  %s", t.ID, t.Title), width-4))
	meta := m.theme.StatusBadge(t.Status) + "  " +
		m.theme.UrgencyBadge(t.Urgency) + "  " +
		m.theme.CardMeta.Render(components.FormatTimestamp(t.CreatedAt))

	return style.Width(width).Render(title + "\n" + meta)
}

// validationReason returns the user-facing reason behind a failed
// client-side check.
func validationReason(err error) string {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason
	}
	return err.Error()
}

// presentError converts an API error to a user-facing line.
func presentError(err error, fallback string) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
