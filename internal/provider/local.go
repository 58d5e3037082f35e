// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"

	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// Local serves records from the on-device store. Writes to sync-enabled
// collections are queued by the store itself, in the same transaction.
type Local struct {
	store store.LocalStore
}

// NewLocal wraps s as a [Provider].
func NewLocal(s store.LocalStore) *Local {
	return &Local{store: s}
}

func (l *Local) Kind() models.ProviderKind {
	return models.ProviderLocal
}

func (l *Local) Init(ctx context.Context) error {
	return l.store.Init(ctx)
}

func (l *Local) Put(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	return l.store.Put(ctx, collection, record)
}

func (l *Local) PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error) {
	return l.store.PutMany(ctx, collection, records)
}

func (l *Local) GetByID(ctx context.Context, collection string, key any) (models.Record, error) {
	return l.store.GetByID(ctx, collection, key)
}

func (l *Local) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	return l.store.GetAll(ctx, collection)
}

func (l *Local) GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	return l.store.GetByIndex(ctx, collection, index, value)
}

func (l *Local) Remove(ctx context.Context, collection string, key any) error {
	return l.store.Remove(ctx, collection, key)
}

// Clear empties the collection. The store also forgets the collection's
// watermark so the next pull fetches the whole remote collection.
func (l *Local) Clear(ctx context.Context, collection string) error {
	return l.store.Clear(ctx, collection)
}

func (l *Local) Close() error {
	return l.store.Close()
}
