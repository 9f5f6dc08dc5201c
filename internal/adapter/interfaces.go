// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to a running
// repair-desk server.
//
// The primary abstraction is [ServerAdapter], which decouples callers (the
// repairctl command) from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/repair-desk/models"
)

// ServerAdapter defines transport-agnostic communication with the
// repair-desk server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Login authenticates the identity with the server. On success it
	// stores the returned bearer token via SetToken and returns the
	// verification result with the granted role.
	Login(ctx context.Context, identity, secret string) (models.AuthResult, error)

	// Logout records a logout for the current session with the server.
	Logout(ctx context.Context) error

	// CreateUser creates a new credential record. Admin capability is
	// enforced server-side; [ErrConflict] is returned (wrapped) for a
	// duplicate identity.
	CreateUser(ctx context.Context, identity, secret string) error

	// Records fetches the record table view selected by filter, sorted by
	// priority when requested.
	Records(ctx context.Context, filter models.FilterSpec, sortByPriority bool) (models.Table, error)

	// AddRecord appends a record row.
	AddRecord(ctx context.Context, row models.Row) error

	// UpdateRecord replaces the named fields on every row matching id.
	UpdateRecord(ctx context.Context, id string, fields map[string]string) error

	// DeleteRecord removes every row matching id.
	DeleteRecord(ctx context.Context, id string) error

	// Export downloads the current table as CSV bytes.
	Export(ctx context.Context) ([]byte, error)

	// Import uploads tabular bytes that wholesale replace the server-side
	// table.
	Import(ctx context.Context, filename string, data []byte) error
}
