// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// Services groups the server-side services.
type Services struct {
	RecordService  RecordService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, s *schema.Schema, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("create app info service: %w", err)
	}

	records := NewRecordValidationService().Wrap(NewRecordService(storages.RecordRepository, s, logger))

	return &Services{
		RecordService:  records,
		AppInfoService: appInfo,
	}, nil
}
