// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logout.go - logout command: clear the remembered session.
//
// Command: logout
// Short:   Clear the remembered session
//
// The token is only deleted locally. The backend invalidates its side on
// expiry; there is no revocation endpoint.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/helpdesk-tui/internal/auth"
)

// HandleLogout clears the remembered session, if any.
func HandleLogout(store *auth.Store) int {
	if _, ok := store.Current(); !ok {
		fmt.Println("No remembered session.")
		return 0
	}
	if err := store.Logout(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println("Signed out.")
	return 0
}
