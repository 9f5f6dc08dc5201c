package http

import (
	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/service"
	"github.com/MKhiriev/repair-desk/models"
)

type Handler struct {
	services *service.Services

	// statuses is the repair-status enumeration mutations are validated
	// against, selected by config (camera or task variant).
	statuses []string

	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	statuses := models.CameraStatuses
	if cfg.StatusSet == "tasks" {
		statuses = models.TaskStatuses
	}

	logger.Info().Str("status_set", cfg.StatusSet).Msg("http handler created")
	return &Handler{
		services: services,
		statuses: statuses,
		version:  cfg.Version,
		logger:   logger,
	}
}

// knownStatus reports whether status belongs to the configured
// enumeration.
func (h *Handler) knownStatus(status string) bool {
	for _, s := range h.statuses {
		if s == status {
			return true
		}
	}
	return false
}
