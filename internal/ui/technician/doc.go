// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package technician provides the technician ticket dashboard.
//
// The dashboard shows summary stat cards computed from the full, unfiltered
// ticket list, a sortable table of every ticket in the system, and the bulk
// operations the role is entitled to: per-row status and urgency changes
// and multi-select delete. Every mutation is followed by a refetch; the
// table never guesses at the server's new state.
//
// Row selection is tracked by ticket id so it survives re-sorting and
// pagination. Bulk deletes settle per id; the ids that failed stay
// selected and are reported to the user, the rest leave the selection.
//
// # Key Types
//
//   - Model: the Bubble Tea model for the dashboard
//   - Refetch: message requesting a reload of the ticket list
package technician
