package service

import (
	"context"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/models"
)

// auditService is the concrete implementation of [AuditService]. It stamps
// entries with the current UTC time and appends them to the action log.
type auditService struct {
	audit  store.AuditRepository
	logger *logger.Logger
}

// NewAuditService constructs an [AuditService] over the given repository.
func NewAuditService(audit store.AuditRepository, logger *logger.Logger) AuditService {
	return &auditService{
		audit:  audit,
		logger: logger,
	}
}

// Record appends exactly one entry for a completed mutating operation.
// Callers invoke it after the mutation succeeds and before reporting
// success upstream; a failed append fails the whole operation.
func (a *auditService) Record(ctx context.Context, user, action, details string) error {
	entry := models.NewActionEntry(user, action, details)

	if err := a.audit.Append(ctx, entry); err != nil {
		a.logger.Err(err).Str("action", action).Msg("error appending audit entry")
		return err
	}

	return nil
}

// Entries returns the full action log, oldest first.
func (a *auditService) Entries(ctx context.Context) ([]models.ActionEntry, error) {
	return a.audit.Entries(ctx)
}
