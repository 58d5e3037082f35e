// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStore is the on-device store of records grouped in collections.
//
// Every call is atomic on its own. Writes to sync-enabled collections
// append the matching change entry inside the same transaction, so a record
// change is never persisted without its queue entry or the other way round.
type LocalStore interface {
	// Init opens or creates the database and reconciles the declared schema.
	// It is idempotent; concurrent callers share one initialisation.
	Init(ctx context.Context) error
	Schema() *schema.Schema

	Put(ctx context.Context, collection string, record models.Record) (models.Record, error)
	PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error)
	GetByID(ctx context.Context, collection string, key any) (models.Record, error)
	GetAll(ctx context.Context, collection string) ([]models.Record, error)
	GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error)
	Remove(ctx context.Context, collection string, key any) error
	Clear(ctx context.Context, collection string) error

	// ApplyRemote overwrites records with remote copies and removes keys
	// deleted remotely, without recording change entries.
	ApplyRemote(ctx context.Context, collection string, upserts []models.Record, deleted []any) (ApplyResult, error)

	SaveSetting(ctx context.Context, key string, value any) error
	Setting(ctx context.Context, key string) (any, bool, error)

	Close() error
}

// ChangeQueue is the durable log of local mutations waiting to be pushed.
type ChangeQueue interface {
	Enqueue(ctx context.Context, collection string, op models.Operation, payload models.Record) (models.ChangeEntry, error)
	// EnqueueMany appends one entry per payload in a single transaction.
	// Either every entry is queued or none is.
	EnqueueMany(ctx context.Context, collection string, op models.Operation, payloads []models.Record) ([]models.ChangeEntry, error)
	// Drain returns the pending entries of collection in enqueue order
	// without removing them.
	Drain(ctx context.Context, collection string) ([]models.ChangeEntry, error)
	// Acknowledge deletes exactly the given entries, all or none.
	Acknowledge(ctx context.Context, ids []int64) error
	Pending(ctx context.Context) ([]models.PendingChanges, error)
}

// SyncMetaStore keeps the per-collection watermark and other small values.
type SyncMetaStore interface {
	// Watermark returns nil when the collection was never pulled.
	Watermark(ctx context.Context, collection string) (*string, error)
	SetWatermark(ctx context.Context, collection, value string) error
	ResetWatermark(ctx context.Context, collection string) error

	Meta(ctx context.Context, key string) (string, bool, error)
	SetMeta(ctx context.Context, key, value string) error
}

// RecordRepository is the authoritative Postgres copy served by the remote
// store. Deletions are kept as tombstones so the change feed can report them.
type RecordRepository interface {
	ApplyBatch(ctx context.Context, collection schema.Collection, batch models.BatchRequest) (models.BatchResponse, error)
	Changes(ctx context.Context, collection schema.Collection, since *int64) (models.ChangesResponse, error)

	Get(ctx context.Context, collection schema.Collection, key any) (models.Record, error)
	List(ctx context.Context, collection schema.Collection) ([]models.Record, error)
	FindByField(ctx context.Context, collection schema.Collection, field string, value any) ([]models.Record, error)
	Put(ctx context.Context, collection schema.Collection, records ...models.Record) ([]models.Record, error)
	Delete(ctx context.Context, collection schema.Collection, key any) error
	Clear(ctx context.Context, collection schema.Collection) error
	Ping(ctx context.Context) error
}

// ApplyResult counts what a pull changed locally.
type ApplyResult struct {
	Upserted int
	Removed  int
}
