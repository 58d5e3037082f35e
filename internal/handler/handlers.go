// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers of the remote store.
package handler

import (
	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/handler/http"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, logger),
	}, nil
}
