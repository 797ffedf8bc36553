// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgencyRankOrdering(t *testing.T) {
	assert.Less(t, UrgencyLow.Rank(), UrgencyNormal.Rank())
	assert.Less(t, UrgencyNormal.Rank(), UrgencyHigh.Rank())
	assert.Less(t, UrgencyHigh.Rank(), UrgencyCritical.Rank())
}

func TestUrgencyRankUnknownDefaultsToNormal(t *testing.T) {
	assert.Equal(t, UrgencyNormal.Rank(), Urgency("").Rank())
	assert.Equal(t, UrgencyNormal.Rank(), Urgency("whatever").Rank())
}

func TestParseUrgency(t *testing.T) {
	assert.Equal(t, UrgencyCritical, ParseUrgency("  CRITICAL "))
	assert.Equal(t, UrgencyNormal, ParseUrgency(""))
	assert.False(t, ParseUrgency("urgent").IsValid())
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, ParseStatus("In_Progress"))
	assert.True(t, StatusResolved.IsValid())
	assert.False(t, Status("pending").IsValid())
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.True(t, RoleTechnician.IsValid())
	assert.False(t, Role("manager").IsValid())
}

func TestParseTimestampLayouts(t *testing.T) {
	ts := ParseTimestamp("2024-02-01T10:30:00Z")
	require.False(t, ts.IsZero())
	assert.Equal(t, time.February, ts.Month())

	// Date-only rows from older backend versions still parse.
	ts = ParseTimestamp("2024-01-01")
	require.False(t, ts.IsZero())
	assert.Equal(t, 2024, ts.Year())
}

func TestParseTimestampInvalidIsZero(t *testing.T) {
	assert.True(t, ParseTimestamp("").IsZero())
	assert.True(t, ParseTimestamp("not a date").IsZero())
	assert.True(t, ParseTimestamp("31/12/2024").IsZero())
}

func TestCreatedTimeZeroSortsFirst(t *testing.T) {
	valid := Ticket{CreatedAt: "2024-01-01T00:00:00Z"}
	invalid := Ticket{CreatedAt: "garbage"}
	assert.True(t, invalid.CreatedTime().Before(valid.CreatedTime()))
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidateNewTicket(t *testing.T) {
	assert.NoError(t, ValidateNewTicket("Printer jam", "Tray 2 again"))

	err := ValidateNewTicket("   ", "desc")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	err = ValidateNewTicket("title", "\t\n")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "description", vErr.Field)
}

func TestValidateRegistrationPasswordMismatch(t *testing.T) {
	err := ValidateRegistration("Ama", "ama@example.com", "pw1", "pw2")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "confirm_password", vErr.Field)

	assert.NoError(t, ValidateRegistration("Ama", "ama@example.com", "pw", "pw"))
}

func TestValidateLogin(t *testing.T) {
	assert.Error(t, ValidateLogin("", "pw"))
	assert.Error(t, ValidateLogin("a@b.c", ""))
	assert.NoError(t, ValidateLogin("a@b.c", "pw"))
}
