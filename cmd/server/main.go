package main

import (
	"fmt"

	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/handler"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/server"
	"github.com/MKhiriev/repair-desk/internal/service"
	"github.com/MKhiriev/repair-desk/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("repair-desk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages := store.NewStorages(cfg.Storage, log)
	services := service.NewServices(storages, cfg.App, log)

	handlers, err := handler.NewHandlers(services, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
