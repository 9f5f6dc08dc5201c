package service

import (
	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/store"
)

// Services aggregates every domain service of the application.
type Services struct {
	AuthService   AuthService
	RecordService RecordService
	AuditService  AuditService
}

// NewServices wires the default service set: the hashed credential
// verifier over the credential file, the record service over the CSV
// table, and the audit service over the action log.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	verifier := NewHashedVerifier(storages.CredentialRepository, cfg.PBKDF2Iterations, logger)

	return &Services{
		AuthService:   NewAuthService(verifier, cfg, logger),
		RecordService: NewRecordService(storages.RecordRepository, logger),
		AuditService:  NewAuditService(storages.AuditRepository, logger),
	}
}
