// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tickets and accounts.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status represents the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists all valid statuses in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ParseStatus normalizes a wire value to a Status. Unknown values are
// returned as-is so they still render; validity is checked separately.
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// =============================================================================
// URGENCY TYPE
// =============================================================================

// Urgency represents the ordinal severity of a ticket.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Urgencies lists all valid urgencies from least to most severe.
var Urgencies = []Urgency{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}

// urgencyRanks maps each urgency to its ordinal rank for sorting.
var urgencyRanks = map[Urgency]int{
	UrgencyLow:      1,
	UrgencyNormal:   2,
	UrgencyHigh:     3,
	UrgencyCritical: 4,
}

// String returns the wire representation of the urgency.
func (u Urgency) String() string {
	return string(u)
}

// DisplayName returns a human-readable name for the urgency.
func (u Urgency) DisplayName() string {
	switch u {
	case UrgencyLow:
		return "Low"
	case UrgencyNormal:
		return "Normal"
	case UrgencyHigh:
		return "High"
	case UrgencyCritical:
		return "Critical"
	default:
		return string(u)
	}
}

// Rank returns the ordinal rank of the urgency (low=1 .. critical=4).
// Unknown or empty urgencies rank as normal, matching the backend default.
func (u Urgency) Rank() int {
	if r, ok := urgencyRanks[u]; ok {
		return r
	}
	return urgencyRanks[UrgencyNormal]
}

// IsValid reports whether the urgency is one of the known severities.
func (u Urgency) IsValid() bool {
	_, ok := urgencyRanks[u]
	return ok
}

// ParseUrgency normalizes a wire value to an Urgency. Empty values map to
// the backend default of normal.
func ParseUrgency(s string) Urgency {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return UrgencyNormal
	}
	return u
}

// =============================================================================
// TICKET TYPE
// =============================================================================

// HistoryEntry is a single free-text update on a ticket's history log.
type HistoryEntry struct {
	UpdatedAt string `json:"updated_at"`
	Update    string `json:"update"`
}

// Time parses the entry timestamp. Unparsable values return the zero time.
func (h HistoryEntry) Time() time.Time {
	return ParseTimestamp(h.UpdatedAt)
}

// Ticket represents a support request as returned by the backend.
//
// CreatedAt is kept as the raw wire string; use CreatedTime for
// chronological comparisons so unparsable values have a defined order.
type Ticket struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Urgency     Urgency        `json:"urgency"`
	CreatedAt   string         `json:"created_at"`
	History     []HistoryEntry `json:"history,omitempty"`
}

// CreatedTime parses the creation timestamp. Unparsable timestamps return
// the zero time, which sorts below every valid one.
func (t Ticket) CreatedTime() time.Time {
	return ParseTimestamp(t.CreatedAt)
}

// timestampLayouts are tried in order when parsing wire timestamps. The
// backend emits RFC 3339 but older rows carry date-only values.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a wire timestamp, returning the zero time when no
// layout matches. Callers rely on the zero time sorting first.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
