// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tickets and accounts.
package model

import "strings"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the access-control classification of an account.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleTechnician:
		return "IT Technician"
	case RoleAdmin:
		return "Administrator"
	default:
		return string(r)
	}
}

// IsValid reports whether the role is a member of the closed role set.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes a wire value to a Role. Role matching is exact but
// case-insensitive, the backend has emitted "Admin" in the past.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// =============================================================================
// ACCOUNT TYPE
// =============================================================================

// Account is a user account snapshot. Read-only from the client side.
type Account struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
