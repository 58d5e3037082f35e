// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
)

// localHandle owns the SQLite connection shared by the local store, the
// change queue and the sync metadata store. The connection is opened lazily
// by the first caller and shared by concurrent ones.
type localHandle struct {
	path   string
	schema *schema.Schema
	logger *logger.Logger

	group singleflight.Group

	mu sync.RWMutex
	db *DB
}

func newLocalHandle(path string, s *schema.Schema, log *logger.Logger) *localHandle {
	return &localHandle{
		path:   path,
		schema: s,
		logger: log,
	}
}

// conn returns the open connection, opening and reconciling it first when
// needed. A failed attempt leaves the handle closed so it can be retried.
func (h *localHandle) conn(ctx context.Context) (*DB, error) {
	h.mu.RLock()
	db := h.db
	h.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := h.group.Do("init", func() (any, error) {
		h.mu.RLock()
		ready := h.db
		h.mu.RUnlock()
		if ready != nil {
			return ready, nil
		}

		opened, err := h.open(ctx)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		h.db = opened
		h.mu.Unlock()
		return opened, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DB), nil
}

func (h *localHandle) open(ctx context.Context) (*DB, error) {
	log := h.logger

	if err := h.schema.Validate(); err != nil {
		log.Err(err).Str("func", "localHandle.open").Msg("declared schema is invalid")
		return nil, err
	}

	db, err := NewConnectSQLite(ctx, h.path, log)
	if err != nil {
		return nil, err
	}

	if err = reconcileSchema(ctx, db, h.schema); err != nil {
		db.Close()
		log.Err(err).
			Str("func", "localHandle.open").
			Str("schema", h.schema.Name).
			Int("version", h.schema.Version).
			Msg("failed to reconcile schema")
		return nil, err
	}

	log.Info().
		Str("func", "localHandle.open").
		Str("schema", h.schema.Name).
		Int("version", h.schema.Version).
		Msg("local store ready")
	return db, nil
}

func (h *localHandle) close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// reconcileSchema registers the declared collections and indexes. It only
// ever adds: existing data is kept, and indexes introduced after the stored
// version are backfilled from the records already present.
func reconcileSchema(ctx context.Context, db *DB, s *schema.Schema) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var storedName string
		var storedVersion int

		err := tx.QueryRowContext(ctx, selectStoreInfo).Scan(&storedName, &storedVersion)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err = tx.ExecContext(ctx, insertStoreInfo, s.Name, s.Version); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			storedVersion = s.Version
		case err != nil:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		case storedName != s.Name:
			return fmt.Errorf("%w: database holds schema %q, declared %q", ErrSchemaMismatch, storedName, s.Name)
		case storedVersion > s.Version:
			return fmt.Errorf("%w: stored %d, declared %d", ErrSchemaDowngrade, storedVersion, s.Version)
		}

		for _, c := range s.Collections {
			if err = registerCollectionTx(ctx, tx, c); err != nil {
				return err
			}
		}

		if storedVersion < s.Version {
			if _, err = tx.ExecContext(ctx, updateStoreInfo, s.Version); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func registerCollectionTx(ctx context.Context, tx *sql.Tx, c schema.Collection) error {
	var keyPath string
	err := tx.QueryRowContext(ctx, selectCollectionKeyPath, c.Name).Scan(&keyPath)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err = tx.ExecContext(ctx, registerCollection, c.Name, c.KeyPath, c.Key.String(), c.SyncEnabled, c.Since); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case keyPath != c.KeyPath:
		return fmt.Errorf("%w: collection %q key path %q, declared %q", ErrSchemaMismatch, c.Name, keyPath, c.KeyPath)
	}

	var added []schema.Index
	for _, idx := range c.Indexes {
		res, err := tx.ExecContext(ctx, registerIndex, c.Name, idx.Name, idx.Field, idx.Since)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added = append(added, idx)
		}
	}

	if len(added) == 0 {
		return nil
	}
	return backfillIndexesTx(ctx, tx, c, added)
}

func backfillIndexesTx(ctx context.Context, tx *sql.Tx, c schema.Collection, indexes []schema.Index) error {
	var count int
	if err := tx.QueryRowContext(ctx, countCollectionRecords, c.Name).Scan(&count); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if count == 0 {
		return nil
	}

	query, args, err := buildSelectCollectionDocsQuery(c.Name)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	type keyedDoc struct {
		key string
		rec map[string]any
	}
	docs := make([]keyedDoc, 0, count)
	for rows.Next() {
		var key string
		var doc []byte
		if err = rows.Scan(&key, &doc); err != nil {
			rows.Close()
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec, decodeErr := decodeRecord(doc)
		if decodeErr != nil {
			rows.Close()
			return decodeErr
		}
		docs = append(docs, keyedDoc{key: key, rec: rec})
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	for _, d := range docs {
		if err = insertIndexEntriesTx(ctx, tx, c.Name, d.key, indexes, d.rec); err != nil {
			return err
		}
	}
	return nil
}

func insertIndexEntriesTx(ctx context.Context, tx *sql.Tx, collection, key string, indexes []schema.Index, rec map[string]any) error {
	for _, idx := range indexes {
		v, ok := rec[idx.Field]
		if !ok || v == nil {
			continue
		}
		encoded, err := schema.EncodeValue(v)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, insertIndexEntry, collection, idx.Name, encoded, key); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}
