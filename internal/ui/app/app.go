// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model for the helpdesk TUI.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/auth"
	"github.com/jeranaias/helpdesk-tui/internal/config"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/admin"
	"github.com/jeranaias/helpdesk-tui/internal/ui/employee"
	"github.com/jeranaias/helpdesk-tui/internal/ui/login"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
	"github.com/jeranaias/helpdesk-tui/internal/ui/technician"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies the mounted view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenEmployee
	ScreenTechnician
	ScreenAdmin
)

// screenRoles is the allowed set per guarded screen. Role matching is
// exact; an admin is not an employee.
var screenRoles = map[Screen][]model.Role{
	ScreenEmployee:   {model.RoleEmployee},
	ScreenTechnician: {model.RoleTechnician},
	ScreenAdmin:      {model.RoleAdmin},
}

// homeScreen maps a role to its landing screen after login.
func homeScreen(role model.Role) Screen {
	switch role {
	case model.RoleTechnician:
		return ScreenTechnician
	case model.RoleAdmin:
		return ScreenAdmin
	default:
		return ScreenEmployee
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher when the file on disk
// changes validly. Only the theme takes effect mid-session.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// failure is satisfied by every child message that carries a network
// error. The root model inspects it for the session-expiry policy before
// the message reaches its view.
type failure interface {
	Failure() error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root application model.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	store  *auth.Store
	guard  *auth.Guard
	cfg    *config.Config

	width  int
	height int

	screen Screen

	login      login.Model
	employee   employee.Model
	technician technician.Model
	admin      admin.Model

	// adminEntry mirrors the --admin flag into rebuilt login forms.
	adminEntry bool
}

// New creates the root model. When the store holds a restored session the
// app lands directly on the role's home screen, re-checked by the guard.
func New(theme *styles.Theme, client *api.Client, store *auth.Store, cfg *config.Config, adminEntry bool) Model {
	m := Model{
		theme:      theme,
		client:     client,
		store:      store,
		guard:      auth.NewGuard(store),
		cfg:        cfg,
		screen:     ScreenLogin,
		login:      login.New(theme, client, adminEntry),
		adminEntry: adminEntry,
	}

	if sess, ok := store.Current(); ok {
		m.mount(homeScreen(sess.Account.Role))
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	switch m.screen {
	case ScreenEmployee:
		return m.employee.Init()
	case ScreenTechnician:
		return m.technician.Init()
	case ScreenAdmin:
		return m.admin.Init()
	}
	return m.login.Init()
}

// mount navigates to a screen, consulting the guard for protected ones.
// A denied check falls back to the login form.
func (m *Model) mount(s Screen) {
	if s != ScreenLogin {
		if m.guard.Check(screenRoles[s]...) != auth.Authorized {
			m.mountLogin("")
			return
		}
	}

	m.screen = s
	identity := m.identityLine()
	switch s {
	case ScreenEmployee:
		m.employee = employee.New(m.theme, m.client, m.cfg.UI.EmployeePageSize)
		m.employee.SetSize(m.width, m.height)
		m.employee.SetIdentity(identity)
	case ScreenTechnician:
		m.technician = technician.New(m.theme, m.client, m.cfg.UI.TechnicianPageSize)
		m.technician.SetSize(m.width, m.height)
		m.technician.SetIdentity(identity)
	case ScreenAdmin:
		m.admin = admin.New(m.theme, m.client)
		m.admin.SetSize(m.width, m.height)
		m.admin.SetIdentity(identity)
	case ScreenLogin:
		m.mountLogin("")
	}
}

// identityLine formats the signed-in account for the view headers,
// "Ama Mensah · Employee".
func (m *Model) identityLine() string {
	sess, ok := m.store.Current()
	if !ok {
		return ""
	}
	return sess.Account.Name + " · " + sess.Account.Role.DisplayName()
}

// mountLogin rebuilds the login form, optionally with a notice line.
func (m *Model) mountLogin(notice string) {
	m.screen = ScreenLogin
	m.login = login.New(m.theme, m.client, m.adminEntry)
	m.login.SetSize(m.width, m.height)
	if notice != "" {
		m.login.SetNotice(notice)
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.login.SetSize(msg.Width, msg.Height)
		m.employee.SetSize(msg.Width, msg.Height)
		m.technician.SetSize(msg.Width, msg.Height)
		m.admin.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.screen != ScreenLogin {
				m.store.Logout()
				m.mountLogin("Signed out.")
				return m, m.login.Init()
			}
		}

	case login.LoggedInMsg:
		// Persisting can fail on a read-only home dir; the in-memory
		// session still works for this run.
		_ = m.store.Login(msg.Token, msg.Account, msg.Remember)
		m.mount(homeScreen(msg.Account.Role))
		return m, m.Init()

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		m.theme = styles.New(msg.Config.UI.Theme)
		m.mount(m.screen)
		return m, m.Init()
	}

	// Session expiry, applied centrally. The message still reaches its
	// view in the authorized case.
	if f, ok := msg.(failure); ok && api.IsUnauthorized(f.Failure()) {
		m.store.Logout()
		m.mountLogin("Your session has expired. Please sign in again.")
		return m, m.login.Init()
	}

	return m.updateScreen(msg)
}

// updateScreen delegates to the mounted view.
func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		m.login, cmd = m.login.Update(msg)
	case ScreenEmployee:
		m.employee, cmd = m.employee.Update(msg)
	case ScreenTechnician:
		m.technician, cmd = m.technician.Update(msg)
	case ScreenAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case ScreenEmployee:
		return m.employee.View()
	case ScreenTechnician:
		return m.technician.View()
	case ScreenAdmin:
		return m.admin.View()
	}
	return m.login.View()
}
