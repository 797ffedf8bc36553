// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package employee provides the employee ticket dashboard.
//
// The view fetches the session's tickets once on mount and runs every list
// interaction (search, status filter, sorting, pagination) locally through
// the pipeline package. Ticket creation is validated client-side before any
// request goes out, and a successful creation triggers a refetch so the
// list always reflects the server's record.
//
// # Key Types
//
//   - Model: the Bubble Tea model for the dashboard
//   - Refetch: message requesting a reload of the ticket list
//
// All network results carry their error through a Failure method so the
// root model can apply the shared session-expiry policy.
package employee
