// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command: backend reachability and session state.
//
// Command: status
// Short:   Show backend and session status
// Aliases: s
//
// Examples:
//   helpdesk status            Show status against the configured backend
//   helpdesk --base-url URL s  Show status against another backend
//
// Output Fields:
//   Backend    Configured base URL
//   Reachable  Whether the API answered, and how long it took
//   Session    Remembered account, or "not signed in"
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/auth"
	"github.com/jeranaias/helpdesk-tui/internal/config"
)

// HandleStatus prints backend reachability and the session state.
func HandleStatus(cfg *config.Config, store *auth.Store, client *api.Client) int {
	fmt.Printf("Backend:   %s\n", client.BaseURL())

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Backend.TimeoutSecs)*time.Second)
	defer cancel()
	_, err := client.ListTickets(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err == nil:
		fmt.Printf("Reachable: yes (%s)\n", elapsed)
	case errors.Is(err, api.ErrNetwork):
		fmt.Println("Reachable: no (network error)")
	case api.IsUnauthorized(err):
		// The API answered; the session is just missing or stale.
		fmt.Printf("Reachable: yes (%s, authentication required)\n", elapsed)
	default:
		fmt.Printf("Reachable: yes (%s, error: %v)\n", elapsed, err)
	}

	if sess, ok := store.Current(); ok {
		fmt.Printf("Session:   %s (%s)\n", sess.Account.Name, sess.Account.Role.DisplayName())
	} else {
		fmt.Println("Session:   not signed in")
	}

	if errors.Is(err, api.ErrNetwork) {
		return 1
	}
	return 0
}
