// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the gateway to the helpdesk backend REST API.
package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jeranaias/helpdesk-tui/internal/model"
)

// =============================================================================
// WIRE ENVELOPES
// =============================================================================

// loginRequest is the body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the success body for POST /auth/login.
type loginResponse struct {
	Token string        `json:"token"`
	User  model.Account `json:"user"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role"`
}

// ticketListEnvelope is the body for GET /tickets.
type ticketListEnvelope struct {
	Success bool           `json:"success"`
	Tickets []model.Ticket `json:"tickets"`
	Message string         `json:"message,omitempty"`
}

// createTicketRequest is the body for POST /tickets.
type createTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// ticketEnvelope is the body for POST /tickets.
type ticketEnvelope struct {
	Success bool         `json:"success"`
	Ticket  model.Ticket `json:"ticket"`
	Message string       `json:"message,omitempty"`
}

// updateStatusRequest is the body for PUT /tickets/{id}/status.
type updateStatusRequest struct {
	Status  string `json:"status"`
	Urgency string `json:"urgency"`
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login authenticates and returns the bearer token with the account
// snapshot. It does not touch the session store; the caller decides what
// to do with the session.
func (c *Client) Login(ctx context.Context, email, password string) (string, model.Account, error) {
	var resp loginResponse
	if err := c.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", model.Account{}, err
	}
	resp.User.Role = model.ParseRole(string(resp.User.Role))
	return resp.Token, resp.User, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.Post(ctx, "/auth/register", req, nil)
}

// =============================================================================
// TICKET ENDPOINTS
// =============================================================================

// ListTickets fetches the full ticket list visible to the session.
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var env ticketListEnvelope
	if err := c.Get(ctx, "/tickets", &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejected(200, env.Message)
	}
	return normalizeTickets(env.Tickets), nil
}

// CreateTicket files a new ticket and returns the server's record, the
// only source of truth; callers refetch rather than echoing it locally.
func (c *Client) CreateTicket(ctx context.Context, title, description string, urgency model.Urgency) (model.Ticket, error) {
	req := createTicketRequest{Title: title, Description: description, Urgency: urgency.String()}
	var env ticketEnvelope
	if err := c.Post(ctx, "/tickets", req, &env); err != nil {
		return model.Ticket{}, err
	}
	if !env.Success {
		return model.Ticket{}, rejected(200, env.Message)
	}
	return normalizeTicket(env.Ticket), nil
}

// UpdateTicketStatus sets the status and urgency of one ticket.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int, status model.Status, urgency model.Urgency) error {
	req := updateStatusRequest{Status: status.String(), Urgency: urgency.String()}
	return c.Put(ctx, fmt.Sprintf("/tickets/%d/status", id), req, nil)
}

// DeleteTicket removes one ticket.
func (c *Client) DeleteTicket(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/tickets/%d", id))
}

// ListUsers fetches all accounts. Admin only; others get a 403.
func (c *Client) ListUsers(ctx context.Context) ([]model.Account, error) {
	var users []model.Account
	if err := c.Get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Role = model.ParseRole(string(users[i].Role))
	}
	return users, nil
}

// =============================================================================
// BULK DELETE
// =============================================================================

// BulkDeleteFailure records one ticket that could not be deleted.
type BulkDeleteFailure struct {
	ID  int
	Err error
}

// BulkDeleteResult is the settled outcome of a bulk delete: which ids went
// through and which did not, never an opaque aggregate.
type BulkDeleteResult struct {
	Succeeded []int
	Failed    []BulkDeleteFailure
}

// AllSucceeded reports whether every requested delete went through.
func (r BulkDeleteResult) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// FailedIDs returns just the identifiers that failed, in ascending order.
func (r BulkDeleteResult) FailedIDs() []int {
	ids := make([]int, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.ID
	}
	sort.Ints(ids)
	return ids
}

// BulkDeleteTickets issues one delete per id concurrently and waits for
// all of them to settle. Deletes are idempotent on the backend but are
// still never retried; a failed id is reported instead.
func (c *Client) BulkDeleteTickets(ctx context.Context, ids []int) BulkDeleteResult {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result BulkDeleteResult
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := c.DeleteTicket(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkDeleteFailure{ID: id, Err: err})
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}
		}(id)
	}
	wg.Wait()

	sort.Ints(result.Succeeded)
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ID < result.Failed[j].ID })
	return result
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// normalizeTicket applies the client-side defaults the views rely on:
// lowercased closed-set fields and urgency defaulting to normal.
func normalizeTicket(t model.Ticket) model.Ticket {
	t.Status = model.ParseStatus(string(t.Status))
	t.Urgency = model.ParseUrgency(string(t.Urgency))
	return t
}

func normalizeTickets(tickets []model.Ticket) []model.Ticket {
	out := make([]model.Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = normalizeTicket(t)
	}
	return out
}
