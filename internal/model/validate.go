// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tickets and accounts.
package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// CLIENT-SIDE VALIDATION
// =============================================================================

// ValidationError is a required-field check that failed before any network
// call was made. Field names the offending input; Reason is shown to the
// user as-is.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateNewTicket checks the creation form fields. Title and description
// are required non-empty after trimming.
func ValidateNewTicket(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "Title is required"}
	}
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "Description is required"}
	}
	return nil
}

// ValidateLogin checks the login form fields.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "Email is required"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "Password is required"}
	}
	return nil
}

// ValidateRegistration checks the registration form fields, including the
// password confirmation match.
func ValidateRegistration(name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "Full name is required"}
	}
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "Email is required"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "Password is required"}
	}
	if password != confirm {
		return &ValidationError{Field: "confirm_password", Reason: "Passwords do not match"}
	}
	return nil
}
