// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin provides the administrator account directory.
//
// The view lists every account with its role. It fetches once on mount;
// failures are shown inline with a retry key rather than silently leaving
// the list empty.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// requestTimeout bounds the directory fetch.
const requestTimeout = 15 * time.Second

// State represents the current state of the admin view.
type State int

const (
	StateLoading State = iota
	StateList
	StateError
)

// Refetch asks the view to reload the account directory.
type Refetch struct{}

// usersMsg delivers a fetch result.
type usersMsg struct {
	seq   int
	users []model.Account
	err   error
}

// Failure exposes the fetch error to the root model's session-expiry check.
func (m usersMsg) Failure() error { return m.err }

// Model is the Bubble Tea model for the account directory.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	width    int
	height   int
	identity string

	state State

	users    []model.Account
	cursor   int
	fetchSeq int

	spinner spinner.Model
	errMsg  string
}

// New creates the admin directory model.
func New(theme *styles.Theme, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		theme:   theme,
		client:  client,
		state:   StateLoading,
		spinner: sp,
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

func (m *Model) fetch() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		users, err := client.ListUsers(ctx)
		return usersMsg{seq: seq, users: users, err: err}
	}
}

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

	case usersMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateError
			m.errMsg = presentError(msg.err, "Could not load the account directory.")
			return m, nil
		}
		m.users = msg.users
		m.errMsg = ""
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		m.state = StateList
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
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
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "r":
		m.state = StateLoading
		fetchCmd := m.fetch()
		return m, tea.Batch(m.spinner.Tick, fetchCmd)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.chrome(m.spinner.View() + " Loading accounts...")
	case StateError:
		body := m.theme.ErrorText.Render(m.errMsg) + "\n\n" +
			m.theme.MutedText.Render("Press r to retry.")
		return m.chrome(body)
	}
	return m.chrome(m.renderList())
}

var adminShortcuts = []components.Shortcut{
	{Key: "↑/↓", Desc: "select"},
	{Key: "r", Desc: "refresh"},
}

func (m Model) chrome(body string) string {
	subtitle := fmt.Sprintf("%d accounts", len(m.users))
	header := components.Header(m.theme, m.width, "Accounts", subtitle, m.identity)
	bar := components.StatusBar(m.theme, m.width, adminShortcuts)

	inner := lipgloss.NewStyle().Padding(1, 2).Render(body)
	gap := m.height - lipgloss.Height(header) - lipgloss.Height(inner) - 1
	if gap < 0 {
		gap = 0
	}
	return header + "\n" + inner + strings.Repeat("\n", gap) + bar
}

func (m Model) renderList() string {
	if len(m.users) == 0 {
		return m.theme.MutedText.Render("No accounts.")
	}

	var b strings.Builder
	b.WriteString(m.theme.TableHeader.Render(
		components.Pad("ID", 6) + components.Pad("Name", 32) + "Role"))
	b.WriteString("\n")

	for i, u := range m.users {
		style := m.theme.TableRow
		if i == m.cursor {
			style = m.theme.TableRowSelected
		}
		row := components.Pad("#"+strconv.Itoa(u.ID), 6) +
			components.Pad(components.Truncate(u.Name, 30), 32) +
			u.Role.DisplayName()
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

// presentError converts an API error to a user-facing line.
func presentError(err error, fallback string) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
