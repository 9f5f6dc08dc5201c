package store

import (
	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/logger"
)

// Storages aggregates every persistence backend of the application.
type Storages struct {
	RecordRepository     RecordRepository
	CredentialRepository CredentialRepository
	AuditRepository      AuditRepository
}

// NewStorages wires the flat-file repositories to the paths named in cfg.
func NewStorages(cfg config.Storage, logger *logger.Logger) *Storages {
	return &Storages{
		RecordRepository:     NewRecordFile(cfg.Files.RecordsPath, logger),
		CredentialRepository: NewCredentialFile(cfg.Files.CredentialsPath, logger),
		AuditRepository:      NewAuditFile(cfg.Files.AuditLogPath, logger),
	}
}
