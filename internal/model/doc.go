// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tickets and accounts.
//
// This package defines the core domain types shared by the API client and
// the views: support tickets with their status/urgency lifecycle fields,
// and user accounts with their access roles. All of these are owned by the
// backend; the client only holds transient copies.
//
// # Key Types
//
//   - Ticket: a support request with status, urgency, and history entries
//   - Status: ticket lifecycle state (open, in_progress, resolved, closed)
//   - Urgency: ordinal severity (low < normal < high < critical)
//   - Account: a user account with a display name and role
//   - Role: access-control classification (employee, technician, admin)
//
// # Usage
//
// Compare two tickets by urgency:
//
//	if a.Urgency.Rank() > b.Urgency.Rank() {
//	    // a is more urgent
//	}
package model
