package handler

import (
	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/handler/http"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.App, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}

	return handlers, nil
}
