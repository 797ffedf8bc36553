// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side session state and the role gate in
// front of the protected views.
package auth

import (
	"sync"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is the client-held proof of authentication: the opaque bearer
// token plus the account snapshot the backend returned at login.
type Session struct {
	Token    string        `json:"token"`
	Account  model.Account `json:"account"`
	Remember bool          `json:"remember"`
}

// =============================================================================
// KEEPER INTERFACE
// =============================================================================

// Keeper persists a remembered session across process restarts.
// FileKeeper is the only production implementation.
type Keeper interface {
	// Save writes the session durably.
	Save(Session) error

	// Load returns the persisted session, or ok=false when none exists
	// or the stored copy is unreadable.
	Load() (Session, bool)

	// Clear removes any persisted session.
	Clear() error
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store is the single holder of session state. It is a pure state
// container: no network calls originate here, and everything else reads
// the session through Current or the Token/Role accessors.
type Store struct {
	mu     sync.RWMutex
	sess   *Session
	keeper Keeper
}

// NewStore creates an empty (unauthenticated) store. keeper may be nil,
// in which case remember requests degrade to memory-only sessions.
func NewStore(keeper Keeper) *Store {
	return &Store{keeper: keeper}
}

// Restore loads a previously remembered session into the store. Corrupt or
// missing persisted sessions leave the store unauthenticated.
func (s *Store) Restore() bool {
	if s.keeper == nil {
		return false
	}
	sess, ok := s.keeper.Load()
	if !ok {
		return false
	}
	s.mu.Lock()
	s.sess = &sess
	s.mu.Unlock()
	return true
}

// Login records a session. When remember is true the session is persisted
// beyond the process lifetime; otherwise any previously persisted session
// is cleared so a stale identity cannot resurface on the next start.
func (s *Store) Login(token string, account model.Account, remember bool) error {
	sess := Session{Token: token, Account: account, Remember: remember}

	s.mu.Lock()
	s.sess = &sess
	s.mu.Unlock()

	if s.keeper == nil {
		return nil
	}
	if remember {
		return s.keeper.Save(sess)
	}
	return s.keeper.Clear()
}

// Logout clears all session state unconditionally, memory and disk both.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.sess = nil
	s.mu.Unlock()

	if s.keeper == nil {
		return nil
	}
	return s.keeper.Clear()
}

// Current returns the session and whether one exists.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return Session{}, false
	}
	return *s.sess, true
}

// Token returns the bearer token, or "" when unauthenticated. This is the
// hook the API client uses to attach the Authorization header.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.Token
}

// Role returns the cached role claim, or "" when unauthenticated.
func (s *Store) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.Account.Role
}
