// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model: it owns the session store,
// routes between the login form and the role views, and applies the two
// policies every screen relies on:
//
//   - Navigation runs through the route guard. A screen is only mounted
//     when the session's role is in its allowed set; anything else lands
//     on the login form.
//   - Session expiry is handled here, once. Any child message carrying an
//     unauthorized error logs the session out and returns to login with a
//     notice. The views never implement their own 401 handling.
//
// # Key Types
//
//   - Model: the root model wired up in main
//   - Screen: the mounted view identifier
package app
