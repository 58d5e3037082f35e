// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic on both sides of the sync
// protocol: the client's sync orchestrator and its periodic job, and the
// server's record service backing the HTTP API.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/shopfloor-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RecordService is the server side of the remote store. Collections are
// addressed by name and resolved against the declared schema.
type RecordService interface {
	// ApplyBatch stores every mutation of batch or none of them.
	ApplyBatch(ctx context.Context, collection string, batch models.BatchRequest) (models.BatchResponse, error)
	// Changes returns the changes after since, a server_time of an earlier
	// response. An empty since returns the full collection.
	Changes(ctx context.Context, collection, since string) (models.ChangesResponse, error)

	Get(ctx context.Context, collection string, key any) (models.Record, error)
	List(ctx context.Context, collection string) ([]models.Record, error)
	FindByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error)
	Put(ctx context.Context, collection string, records ...models.Record) ([]models.Record, error)
	Delete(ctx context.Context, collection string, key any) error
	Clear(ctx context.Context, collection string) error

	Ping(ctx context.Context) (models.PingResponse, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}

// SyncService reconciles the local store with the remote store.
//
// A cycle for one collection pushes the queued local changes and then pulls
// the remote changes since the collection's watermark. Failures are reported,
// never returned: the queue and watermark are left as they were and the next
// run retries.
type SyncService interface {
	SyncCollection(ctx context.Context, collection string) models.CollectionReport
	// SyncAll runs one cycle for every sync-enabled collection. A failing
	// collection does not stop the others.
	SyncAll(ctx context.Context) models.SyncReport

	// Push sends the queued changes of collection and acknowledges them.
	Push(ctx context.Context, collection string) (int, error)
	// Pull applies the remote changes since the watermark and advances it.
	Pull(ctx context.Context, collection string) (models.PullResult, error)
}

// SyncJob runs SyncAll periodically in the background.
type SyncJob interface {
	// Start launches the job. A non-positive interval leaves it disabled.
	Start(ctx context.Context, interval time.Duration)
	// Stop cancels the job and waits for a running cycle to finish.
	Stop()
}
