// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package employee

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/components"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// Field indexes for the creation form.
const (
	formTitle = iota
	formDescription
	formUrgency
	formFieldCount
)

// urgencyChoices is the selector order, lowest first.
var urgencyChoices = []model.Urgency{
	model.UrgencyLow, model.UrgencyNormal, model.UrgencyHigh, model.UrgencyCritical,
}

// createForm holds the state of the new-ticket form.
type createForm struct {
	title       textinput.Model
	description textinput.Model
	urgency     model.Urgency
	focus       int
	submitting  bool
	errMsg      string
}

// newCreateForm returns an empty form defaulting to normal urgency.
func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "Short summary"
	title.CharLimit = 120

	description := textinput.New()
	description.Placeholder = "What happened, and what did you expect?"
	description.CharLimit = 2000

	return createForm{
		title:       title,
		description: description,
		urgency:     model.UrgencyNormal,
	}
}

// focusFirst puts the cursor on the title field.
func (f *createForm) focusFirst() {
	f.focus = formTitle
	f.syncFocus()
}

// cycleFocus moves focus across the form's fields.
func (f *createForm) cycleFocus(delta int) {
	f.focus = (f.focus + delta + formFieldCount) % formFieldCount
	f.syncFocus()
}

func (f *createForm) syncFocus() {
	f.title.Blur()
	f.description.Blur()
	switch f.focus {
	case formTitle:
		f.title.Focus()
	case formDescription:
		f.description.Focus()
	}
}

// cycleUrgency steps the urgency selector.
func (f *createForm) cycleUrgency(key string) {
	idx := 0
	for i, u := range urgencyChoices {
		if u == f.urgency {
			idx = i
		}
	}
	if key == "left" {
		idx = (idx - 1 + len(urgencyChoices)) % len(urgencyChoices)
	} else {
		idx = (idx + 1) % len(urgencyChoices)
	}
	f.urgency = urgencyChoices[idx]
}

// updateInputs forwards a message to the focused text input.
func (f *createForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case formTitle:
		f.title, cmd = f.title.Update(msg)
	case formDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

// render draws the form.
func (f createForm) render(theme *styles.Theme) string {
	var b strings.Builder
	b.WriteString(theme.OverlayTitle.Render("New Ticket"))
	b.WriteString("\n\n")

	if f.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(f.errMsg))
		b.WriteString("\n\n")
	}

	label := func(s string, focused bool) string {
		style := theme.FormLabel
		if focused {
			style = theme.FormFocused
		}
		return style.Render(components.Pad(s, 14))
	}

	b.WriteString(label("Title", f.focus == formTitle))
	b.WriteString(f.title.View())
	b.WriteString("\n")
	b.WriteString(label("Description", f.focus == formDescription))
	b.WriteString(f.description.View())
	b.WriteString("\n")
	b.WriteString(label("Urgency", f.focus == formUrgency))
	b.WriteString(theme.UrgencyBadge(f.urgency))
	b.WriteString(theme.FormHelp.Render("  (←/→ to change)"))
	b.WriteString("\n\n")

	if f.submitting {
		b.WriteString(theme.MutedText.Render("Submitting..."))
	} else {
		b.WriteString(theme.FormHelp.Render("ctrl+s submit · esc cancel"))
	}
	return b.String()
}
