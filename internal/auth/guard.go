// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side session state and the role gate in
// front of the protected views.
package auth

import "github.com/jeranaias/helpdesk-tui/internal/model"

// =============================================================================
// ROUTE GUARD
// =============================================================================

// Decision is the outcome of a guard check: either the view may render, or
// the caller must route to the login entry point.
type Decision int

const (
	// Authorized means a session exists and its role is in the allowed set.
	Authorized Decision = iota

	// RedirectToLogin means no session exists or the role is not allowed.
	RedirectToLogin
)

// Guard gates navigation to protected views. It reads the Session Store
// synchronously on every check and trusts the locally cached role claim;
// token validity is the API client's concern.
type Guard struct {
	store *Store
}

// NewGuard creates a guard over the given store.
func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Check permits rendering only when a session exists and its role is a
// member of the allowed set. Role matching is exact, not hierarchical: an
// admin is denied an employee-only view unless admin is listed.
func (g *Guard) Check(allowed ...model.Role) Decision {
	sess, ok := g.store.Current()
	if !ok {
		return RedirectToLogin
	}
	for _, role := range allowed {
		if sess.Account.Role == role {
			return Authorized
		}
	}
	return RedirectToLogin
}

// Allowed is a convenience wrapper for callers that want a bool.
func (g *Guard) Allowed(allowed ...model.Role) bool {
	return g.Check(allowed...) == Authorized
}
