// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package provider selects the data provider that serves application reads
// and writes: the remote store while it is reachable, the local store
// otherwise.
//
// [Session] holds the process-wide provider state. It falls back
// automatically only when a provider fails to initialise; errors of an
// already active provider reach the caller unchanged.
package provider

import (
	"context"

	"github.com/MKhiriev/shopfloor-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/provider_mock.go -package=mock

// Provider is a backing store that serves the record contract. The local
// store and the remote store client both implement it.
type Provider interface {
	Kind() models.ProviderKind
	// Init prepares the provider. It is safe to call repeatedly.
	Init(ctx context.Context) error

	Put(ctx context.Context, collection string, record models.Record) (models.Record, error)
	PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error)
	GetByID(ctx context.Context, collection string, key any) (models.Record, error)
	GetAll(ctx context.Context, collection string) ([]models.Record, error)
	GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error)
	Remove(ctx context.Context, collection string, key any) error
	Clear(ctx context.Context, collection string) error

	Close() error
}
