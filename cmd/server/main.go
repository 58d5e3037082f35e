// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command server runs the remote store: the authoritative Postgres copy of
// the synchronised collections behind the device HTTP API.
package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/handler"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/server"
	"github.com/MKhiriev/shopfloor-sync/internal/service"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("shopfloor-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Str("token_issuer", cfg.App.TokenIssuer).
		Msg("received configs")

	s := schema.Default()
	if err = s.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid schema")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, s, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
