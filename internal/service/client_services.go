// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/shopfloor-sync/internal/adapter"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	SyncService SyncService
	SyncJob     SyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.SyncClient, s *schema.Schema, logger *logger.Logger) *ClientServices {
	syncSvc := NewSyncService(storages.Local, storages.Queue, storages.SyncMeta, remote, s, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewSyncJob(syncSvc, logger),
	}
}
