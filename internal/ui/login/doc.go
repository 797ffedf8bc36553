// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and registration forms.
//
// The login form mirrors the helpdesk entry flow: email, masked password,
// an audience selector (employee or technician; administrators sign in
// through the --admin entry point), and a remember-me toggle. Successful
// authentication is announced to the root model with a LoggedInMsg; the
// form itself never touches the session store.
package login
