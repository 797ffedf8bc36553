// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the gateway to the helpdesk backend REST API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ErrNetwork indicates the request could not reach the backend at all.
// It is always wrapped with the underlying transport error.
var ErrNetwork = errors.New("backend unreachable")

// Kind classifies a RequestError by what the caller can do about it.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized" // 401: session invalid or expired
	KindForbidden    Kind = "forbidden"    // 403: role lacks the capability
	KindNotFound     Kind = "not_found"    // 404: resource gone
	KindValidation   Kind = "validation"   // 400/422: backend rejected the payload
	KindRateLimited  Kind = "rate_limited" // 429
	KindServer       Kind = "server"       // 5xx: transient backend failure
	KindRejected     Kind = "rejected"     // 2xx envelope with success=false
	KindUnknown      Kind = "unknown"
)

// RequestError is a response the backend answered with a failure. Message
// is extracted from the response body when present, else a generic
// fallback, so it is always safe to show to the user.
type RequestError struct {
	Status  int
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend error [%s] (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error [%s]: %s", e.Kind, e.Message)
}

// Retryable reports whether the failure is transient. Only the API client
// consults this, and only for idempotent reads.
func (e *RequestError) Retryable() bool {
	return e.Kind == KindServer || e.Kind == KindRateLimited
}

// kindForStatus maps an HTTP status to an error kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// genericMessage is shown when a failure body carried no usable message.
const genericMessage = "The request could not be completed. Please try again."

// apiErrorBody covers the two error body shapes the backend emits:
// {"message": "..."} and {"error": {"message": "..."}}.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// errorFromResponse builds a RequestError from a non-2xx response body.
func errorFromResponse(status int, body []byte) *RequestError {
	msg := extractMessage(body)
	if msg == "" {
		msg = genericMessage
	}
	return &RequestError{Status: status, Kind: kindForStatus(status), Message: msg}
}

// extractMessage pulls a human-readable message out of a failure body,
// returning "" when the body is empty or unparsable.
func extractMessage(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if m := strings.TrimSpace(parsed.Message); m != "" {
		return m
	}
	return strings.TrimSpace(parsed.Error.Message)
}

// rejected builds the RequestError for a 2xx envelope with success=false.
func rejected(status int, message string) *RequestError {
	if strings.TrimSpace(message) == "" {
		message = genericMessage
	}
	return &RequestError{Status: status, Kind: KindRejected, Message: message}
}

// IsUnauthorized reports whether err is a 401 from the backend. The root
// app model uses this for centralized session-expiry handling.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == KindUnauthorized
}
