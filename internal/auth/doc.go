// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side session state and the role gate in
// front of the protected views.
//
// The session is the client's proof of authentication: the bearer token
// returned by the backend plus a snapshot of the account it belongs to.
// It lives in memory for the lifetime of the process; when the user asked
// to be remembered it is additionally persisted, encrypted, under the
// application home directory and restored on the next start.
//
// # Key Types
//
//   - Session: bearer token + account snapshot + remember flag
//   - Store: mutex-guarded session container with login/logout/current
//   - FileKeeper: encrypted at-rest persistence for remembered sessions
//   - Guard: allows or redirects based on the session's role
//
// The Store performs no network calls and never validates the token with
// the backend; expiry shows up as a 401 from the API client and is handled
// centrally by the root application model.
package auth
