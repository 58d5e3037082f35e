// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
)

// ClientStorages groups the client-side stores. All three share one SQLite
// file and connection, so a record write and its queue entry commit together.
type ClientStorages struct {
	Local    LocalStore
	Queue    ChangeQueue
	SyncMeta SyncMetaStore
}

// NewClientStorages wires the client stores for the database at cfg.DB.DSN.
// The file is opened by the first call to LocalStore.Init or by the first
// queue or metadata operation.
func NewClientStorages(cfg config.ClientStorage, s *schema.Schema, log *logger.Logger) *ClientStorages {
	log.Info().Str("path", cfg.DB.DSN).Msg("creating client storages...")

	handle := newLocalHandle(cfg.DB.DSN, s, log)
	queue := &changeQueue{localHandle: handle, now: time.Now}

	return &ClientStorages{
		Local:    &localStore{localHandle: handle, queue: queue},
		Queue:    queue,
		SyncMeta: &syncMetaStore{localHandle: handle},
	}
}
