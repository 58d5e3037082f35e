// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
)

const watermarkPrefix = "last_sync_"

func watermarkKey(collection string) string {
	return watermarkPrefix + collection
}

// syncMetaStore is the SQLite implementation of [SyncMetaStore]. Watermarks
// live in the same key/value table as other metadata under
// "last_sync_<collection>".
type syncMetaStore struct {
	*localHandle
}

// Watermark returns the last server_time pulled for collection.
func (m *syncMetaStore) Watermark(ctx context.Context, collection string) (*string, error) {
	if _, err := m.schema.Collection(collection); err != nil {
		return nil, err
	}

	value, ok, err := m.Meta(ctx, watermarkKey(collection))
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

// SetWatermark records the server_time of a completed pull.
func (m *syncMetaStore) SetWatermark(ctx context.Context, collection, value string) error {
	if _, err := m.schema.Collection(collection); err != nil {
		return err
	}
	return m.SetMeta(ctx, watermarkKey(collection), value)
}

// ResetWatermark forgets the watermark so the next pull is a full fetch.
func (m *syncMetaStore) ResetWatermark(ctx context.Context, collection string) error {
	log := logger.FromContext(ctx)

	if _, err := m.schema.Collection(collection); err != nil {
		return err
	}

	db, err := m.conn(ctx)
	if err != nil {
		return err
	}

	if _, err = db.ExecContext(ctx, deleteMeta, watermarkKey(collection)); err != nil {
		log.Err(err).Str("func", "syncMetaStore.ResetWatermark").Str("collection", collection).Msg("failed to reset watermark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Meta returns the value stored under key and whether it exists.
func (m *syncMetaStore) Meta(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	db, err := m.conn(ctx)
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, selectMeta, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "syncMetaStore.Meta").Str("key", key).Msg("failed to read metadata")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

// SetMeta stores value under key, replacing any previous value.
func (m *syncMetaStore) SetMeta(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	db, err := m.conn(ctx)
	if err != nil {
		return err
	}

	if _, err = db.ExecContext(ctx, upsertMeta, key, value); err != nil {
		log.Err(err).Str("func", "syncMetaStore.SetMeta").Str("key", key).Msg("failed to write metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
