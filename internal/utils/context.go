// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/repair-desk/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key used to store the authenticated identity in
// the context. Used together with GetIdentityFromContext for type-safe
// retrieval.
var IdentityCtxKey = contextKey("identity")

// RoleCtxKey is the key used to store the authenticated identity's role in
// the context. Used together with GetRoleFromContext for type-safe
// retrieval.
var RoleCtxKey = contextKey("role")

// GetIdentityFromContext retrieves the authenticated identity from the
// context.
//
// Returns the identity string and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(string)
	return identity, ok
}

// GetRoleFromContext retrieves the authenticated identity's role from the
// context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok
}
