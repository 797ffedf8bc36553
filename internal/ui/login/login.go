// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and registration forms.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// requestTimeout bounds the auth calls issued from the forms.
const requestTimeout = 15 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedInMsg announces a successful, audience-checked login. The root
// model records the session and navigates by role.
type LoggedInMsg struct {
	Token    string
	Account  model.Account
	Remember bool
}

// RegisteredMsg announces a successful registration; the root model
// returns the user to the login form.
type RegisteredMsg struct{}

// loginResultMsg carries the backend's answer to a login attempt.
type loginResultMsg struct {
	token   string
	account model.Account
	err     error
}

// registerResultMsg carries the backend's answer to a registration.
type registerResultMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// mode selects which form is shown.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// Field indexes for the login form.
const (
	loginEmail = iota
	loginPassword
	loginAudience
	loginRemember
	loginFieldCount
)

// Field indexes for the registration form.
const (
	regName = iota
	regEmail
	regPassword
	regConfirm
	regDepartment
	regFieldCount
)

// Model is the Bubble Tea model for the authentication forms.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	width  int
	height int

	mode  mode
	focus int

	// Login form
	email    textinput.Model
	password textinput.Model
	audience model.Role
	remember bool

	// Registration form
	regInputs [regFieldCount]textinput.Model

	// adminEntry widens the audience selector to include admin.
	adminEntry bool

	submitting bool
	errMsg     string
	notice     string
}

// New creates the authentication model. adminEntry corresponds to the
// --admin flag: the audience selector then includes administrator.
func New(theme *styles.Theme, client *api.Client, adminEntry bool) Model {
	email := textinput.New()
	email.Placeholder = "Email address"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := Model{
		theme:      theme,
		client:     client,
		email:      email,
		password:   password,
		audience:   model.RoleEmployee,
		adminEntry: adminEntry,
	}
	if adminEntry {
		m.audience = model.RoleAdmin
	}

	placeholders := [regFieldCount]string{
		"Full name", "Email address", "Password", "Confirm password", "Department (optional)",
	}
	for i := range m.regInputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		if i == regPassword || i == regConfirm {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.regInputs[i] = ti
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNotice shows a one-line informational message above the form, used
// for "session expired" and "registration successful" flows.
func (m *Model) SetNotice(s string) {
	m.notice = s
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err, "Invalid login credentials")
			return m, nil
		}
		if denied := m.audienceDenied(msg.account.Role); denied != "" {
			m.errMsg = denied
			return m, nil
		}
		token, account, remember := msg.token, msg.account, m.remember
		return m, func() tea.Msg {
			return LoggedInMsg{Token: token, Account: account, Remember: remember}
		}

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err, "Registration failed")
			return m, nil
		}
		m.mode = modeLogin
		m.focus = loginEmail
		m.errMsg = ""
		m.notice = "Registration successful. Sign in with your new account."
		m.syncFocus()
		return m, func() tea.Msg { return RegisteredMsg{} }
	}

	return m.updateInputs(msg)
}

// handleKey processes key input for whichever form is active.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		return m.submit()

	case "ctrl+r":
		// Switch between login and registration.
		if m.mode == modeLogin {
			m.mode = modeRegister
		} else {
			m.mode = modeLogin
		}
		m.focus = 0
		m.errMsg = ""
		m.syncFocus()
		return m, nil

	case " ", "left", "right":
		// Space and arrows operate the non-text fields.
		if m.mode == modeLogin {
			switch m.focus {
			case loginAudience:
				m.cycleAudience(msg.String())
				return m, nil
			case loginRemember:
				if msg.String() == " " {
					m.remember = !m.remember
				}
				return m, nil
			}
		}
	}

	return m.updateInputs(msg)
}

// cycleFocus moves focus across the active form's fields.
func (m *Model) cycleFocus(delta int) {
	count := loginFieldCount
	if m.mode == modeRegister {
		count = regFieldCount
	}
	m.focus = (m.focus + delta + count) % count
	m.syncFocus()
}

// syncFocus focuses the text input matching the focus index.
func (m *Model) syncFocus() {
	m.email.Blur()
	m.password.Blur()
	for i := range m.regInputs {
		m.regInputs[i].Blur()
	}

	if m.mode == modeLogin {
		switch m.focus {
		case loginEmail:
			m.email.Focus()
		case loginPassword:
			m.password.Focus()
		}
		return
	}
	m.regInputs[m.focus].Focus()
}

// cycleAudience steps the audience selector.
func (m *Model) cycleAudience(key string) {
	roles := []model.Role{model.RoleEmployee, model.RoleTechnician}
	if m.adminEntry {
		roles = append(roles, model.RoleAdmin)
	}
	idx := 0
	for i, r := range roles {
		if r == m.audience {
			idx = i
		}
	}
	if key == "left" {
		idx = (idx - 1 + len(roles)) % len(roles)
	} else {
		idx = (idx + 1) % len(roles)
	}
	m.audience = roles[idx]
}

// updateInputs forwards a message to the focused text input.
func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == modeLogin {
		switch m.focus {
		case loginEmail:
			m.email, cmd = m.email.Update(msg)
		case loginPassword:
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}
	m.regInputs[m.focus], cmd = m.regInputs[m.focus].Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates the active form client-side and fires the request.
// Validation failures never reach the network.
func (m Model) submit() (Model, tea.Cmd) {
	m.errMsg = ""
	m.notice = ""

	if m.mode == modeLogin {
		email := strings.TrimSpace(m.email.Value())
		password := m.password.Value()
		if err := model.ValidateLogin(email, password); err != nil {
			m.errMsg = validationReason(err)
			return m, nil
		}
		m.submitting = true
		client := m.client
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			token, account, err := client.Login(ctx, email, password)
			return loginResultMsg{token: token, account: account, err: err}
		}
	}

	name := strings.TrimSpace(m.regInputs[regName].Value())
	email := strings.TrimSpace(m.regInputs[regEmail].Value())
	password := m.regInputs[regPassword].Value()
	confirm := m.regInputs[regConfirm].Value()
	department := strings.TrimSpace(m.regInputs[regDepartment].Value())

	if err := model.ValidateRegistration(name, email, password, confirm); err != nil {
		m.errMsg = validationReason(err)
		return m, nil
	}

	m.submitting = true
	client := m.client
	req := api.RegisterRequest{
		Name:       name,
		Email:      email,
		Password:   password,
		Department: department,
		// Self-service registration always creates employees; other
		// roles are provisioned by administrators.
		Role: model.RoleEmployee.String(),
	}
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return registerResultMsg{err: client.Register(ctx, req)}
	}
}

// audienceDenied enforces the audience selector against the role the
// backend actually returned. An empty string means allowed.
func (m Model) audienceDenied(role model.Role) string {
	if role == model.RoleAdmin && !m.adminEntry {
		return "Administrators must sign in through the admin entry point (--admin)."
	}
	if role != m.audience {
		return "This account is not registered as " + m.audience.DisplayName() + "."
	}
	return ""
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

// errorText extracts a user-presentable message from an API error.
func errorText(err error, fallback string) string {
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
	if m.mode == modeRegister {
		return m.viewForm("Create Account", m.renderRegister(), registerShortcuts)
	}
	return m.viewForm("IT Helpdesk Login", m.renderLogin(), loginShortcuts)
}

var loginShortcuts = []components.Shortcut{
	{Key: "tab", Desc: "next field"},
	{Key: "enter", Desc: "sign in"},
	{Key: "ctrl+r", Desc: "create account"},
	{Key: "ctrl+c", Desc: "quit"},
}

var registerShortcuts = []components.Shortcut{
	{Key: "tab", Desc: "next field"},
	{Key: "enter", Desc: "register"},
	{Key: "ctrl+r", Desc: "back to login"},
	{Key: "ctrl+c", Desc: "quit"},
}

// viewForm centers a form box in the window with the status bar below.
func (m Model) viewForm(title, body string, shortcuts []components.Shortcut) string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render(title))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.theme.SuccessText.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(m.theme.ErrorText.Render(m.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.theme.MutedText.Render("Signing in..."))
	}

	box := m.theme.Overlay.Render(b.String())
	bar := components.StatusBar(m.theme, m.width, shortcuts)

	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
	return content + "\n" + bar
}

// renderLogin renders the login form fields.
func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(m.fieldLabel("Email", m.focus == loginEmail))
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Password", m.focus == loginPassword))
	b.WriteString(m.password.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Sign in as", m.focus == loginAudience))
	b.WriteString(m.audience.DisplayName())
	b.WriteString(m.theme.FormHelp.Render("  (←/→ to change)"))
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Remember me", m.focus == loginRemember))
	if m.remember {
		b.WriteString("[x]")
	} else {
		b.WriteString("[ ]")
	}
	b.WriteString(m.theme.FormHelp.Render("  (space to toggle)"))
	return b.String()
}

// renderRegister renders the registration form fields.
func (m Model) renderRegister() string {
	labels := [regFieldCount]string{"Full name", "Email", "Password", "Confirm password", "Department"}
	var b strings.Builder
	for i := range m.regInputs {
		b.WriteString(m.fieldLabel(labels[i], m.focus == i))
		b.WriteString(m.regInputs[i].View())
		if i != regFieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// fieldLabel renders a left-hand form label, highlighted when focused.
func (m Model) fieldLabel(label string, focused bool) string {
	style := m.theme.FormLabel
	if focused {
		style = m.theme.FormFocused
	}
	return style.Render(components.Pad(label, 18))
}
