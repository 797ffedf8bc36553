// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken is a TokenSource with a fixed value.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerHeaderAttachedWhenSessionExists(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"tickets":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok-123"))
	_, err := client.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoBearerHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"tickets":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))
	_, err := client.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true,"tickets":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.ListTickets(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestErrorKindsFromStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"message":"nope"}`))
		}))

		// No retries so 5xx cases return immediately.
		client := NewClient(server.URL, nil).WithMaxRetries(1)
		err := client.DeleteTicket(context.Background(), 1)
		server.Close()

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr, "status %d", tc.status)
		assert.Equal(t, tc.kind, reqErr.Kind, "status %d", tc.status)
		assert.Equal(t, "nope", reqErr.Message)
	}
}

func TestMessageExtractedFromNestedErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"title is required"}}`))
	}))
	defer server.Close()

	err := NewClient(server.URL, nil).DeleteTicket(context.Background(), 1)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "title is required", reqErr.Message)
}

func TestUnparsableErrorBodyFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	err := NewClient(server.URL, nil).DeleteTicket(context.Background(), 1)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, genericMessage, reqErr.Message)
}

func TestNetworkErrorIsWrapped(t *testing.T) {
	// Nothing listens here.
	client := NewClient("http://127.0.0.1:1", nil).WithMaxRetries(1)
	err := client.DeleteTicket(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&RequestError{Status: 401, Kind: KindUnauthorized}))
	assert.False(t, IsUnauthorized(&RequestError{Status: 403, Kind: KindForbidden}))
	assert.False(t, IsUnauthorized(errors.New("other")))
}

// =============================================================================
// RETRY POLICY
// =============================================================================

func TestGetRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true,"tickets":[]}`))
	}))
	defer server.Close()

	tickets, err := NewClient(server.URL, nil).ListTickets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetDoesNotRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).ListTickets(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMutationsNeverRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.CreateTicket(context.Background(), "t", "d", "normal")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a retried POST could create a duplicate ticket")

	calls.Store(0)
	err = client.UpdateTicketStatus(context.Background(), 1, "open", "low")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	calls.Store(0)
	err = client.DeleteTicket(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
