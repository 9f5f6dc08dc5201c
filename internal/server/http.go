package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/logger"
)

type httpServer struct {
	server *http.Server
}

func newHTTPServer(router http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	logger.Info().Str("address", cfg.HTTPAddress).Msg("http server created")
	return &httpServer{
		server: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      router,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil {
		fmt.Printf("HTTP server ListenAndServe: %v\n", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); h.server != nil && err != nil {
		fmt.Printf("HTTP server Shutdown: %v\n", err)
	}
}
