// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/model"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

func newTestModel() Model {
	m := New(styles.New("dark"), api.NewClient("http://127.0.0.1:1", nil))
	m.SetSize(100, 30)
	return m
}

func TestDirectoryLoads(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(Refetch{})

	m, _ = m.Update(usersMsg{seq: m.fetchSeq, users: []model.Account{
		{ID: 1, Name: "Amy", Role: model.RoleEmployee},
		{ID: 2, Name: "Tia", Role: model.RoleTechnician},
	}})

	assert.Equal(t, StateList, m.state)
	assert.Len(t, m.users, 2)
}

func TestDirectoryFetchFailureSurfaced(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(Refetch{})

	m, _ = m.Update(usersMsg{seq: m.fetchSeq, err: &api.RequestError{
		Status: 403, Kind: api.KindForbidden, Message: "Admin access required",
	}})

	require.Equal(t, StateError, m.state)
	assert.Equal(t, "Admin access required", m.errMsg)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestStaleDirectoryResponseDropped(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(Refetch{})
	stale := m.fetchSeq

	m, _ = m.Update(Refetch{})
	m, _ = m.Update(usersMsg{seq: stale, users: []model.Account{{ID: 9}}})

	assert.Equal(t, StateLoading, m.state)
	assert.Empty(t, m.users)
}
