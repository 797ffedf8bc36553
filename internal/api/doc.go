// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the gateway to the helpdesk backend REST API.
//
// It wraps every outbound request: the current session's bearer token and a
// request id are attached automatically, responses are size-limited, and
// backend failures are normalized into a single error shape regardless of
// which endpoint produced them.
//
// # Key Types
//
//   - Client: HTTP client with typed endpoints over generic REST verbs
//   - RequestError: backend said no; carries a status-derived Kind and the
//     human-readable message extracted from the response body
//   - ErrNetwork: the request never reached the backend
//
// # Retries
//
// Idempotent reads (GET) retry up to three times with exponential backoff
// on transient failures. Mutating verbs never retry: a duplicate POST would
// create a duplicate ticket.
//
// # Usage
//
//	client := api.NewClient(baseURL, store)
//	tickets, err := client.ListTickets(ctx)
//	var reqErr *api.RequestError
//	if errors.As(err, &reqErr) && reqErr.Kind == api.KindUnauthorized {
//	    // session expired; the app model routes to login
//	}
package api
