package store

import (
	"context"

	"github.com/MKhiriev/repair-desk/models"
)

// RecordRepository persists the device record table as a whole: every load
// reads the full backing file and every save rewrites it.
type RecordRepository interface {
	Load(ctx context.Context) (models.Table, error)
	Save(ctx context.Context, table models.Table) error
}

// CredentialRepository persists hashed credential records keyed by identity.
type CredentialRepository interface {
	Load(ctx context.Context) (map[string]models.HashedCredential, error)
	Find(ctx context.Context, identity string) (models.HashedCredential, error)
	Create(ctx context.Context, identity string, credential models.HashedCredential) error
}

// AuditRepository appends entries to the append-only action log.
type AuditRepository interface {
	Append(ctx context.Context, entry models.ActionEntry) error
	Entries(ctx context.Context) ([]models.ActionEntry, error)
}
