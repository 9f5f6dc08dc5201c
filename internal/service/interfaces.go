package service

import (
	"context"

	"github.com/MKhiriev/repair-desk/models"
)

// CredentialVerifier answers yes/no for a submitted identity/secret pair.
//
// Implementations never distinguish between an unknown identity and a
// wrong secret: both produce the same not-authenticated result.
type CredentialVerifier interface {
	Verify(ctx context.Context, identity, secret string) (models.AuthResult, error)
}

// CredentialCreator creates a new credential record. Only the hashed
// verifier variant supports creation; the static table is fixed at
// construction.
type CredentialCreator interface {
	Create(ctx context.Context, identity, secret string) error
}

// AuthService handles credential verification, credential creation, and
// the JWT session token lifecycle for the HTTP shell. The admin-only
// capability check for CreateCredential is performed by the caller, not by
// this service.
type AuthService interface {
	Verify(ctx context.Context, identity, secret string) (models.AuthResult, error)
	CreateCredential(ctx context.Context, identity, secret string) error
	CreateToken(ctx context.Context, identity string, role models.Role) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService exposes the device record table operations. Mutations are
// serialized internally; the backing file sees one writer at a time.
type RecordService interface {
	List(ctx context.Context, filter models.FilterSpec, sortByPriority bool) (models.Table, error)
	Add(ctx context.Context, row models.Row) (models.Table, error)
	Update(ctx context.Context, id string, fields map[string]string) (models.Table, error)
	Delete(ctx context.Context, id string) (models.Table, error)
	ImportReplace(ctx context.Context, data []byte, format ImportFormat) (models.Table, error)
	Export(ctx context.Context) ([]byte, error)
	Summary(ctx context.Context) (map[string]int, error)
}

// AuditService records one action log entry per mutating operation.
type AuditService interface {
	Record(ctx context.Context, user, action, details string) error
	Entries(ctx context.Context) ([]models.ActionEntry, error)
}
