// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// localStore is the SQLite implementation of [LocalStore].
type localStore struct {
	*localHandle
	queue *changeQueue
}

// Schema returns the declared schema the store reconciles against.
func (s *localStore) Schema() *schema.Schema {
	return s.schema
}

// Init opens the database file and reconciles the declared schema.
func (s *localStore) Init(ctx context.Context) error {
	_, err := s.conn(ctx)
	return err
}

// Close closes the database. A later Init reopens it.
func (s *localStore) Close() error {
	return s.close()
}

// Put inserts or overwrites record by its primary key, assigning the key
// when the collection generates keys and none is set. Writes to sync-enabled
// collections enqueue an upsert in the same transaction.
func (s *localStore) Put(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	out, err := s.PutMany(ctx, collection, []models.Record{record})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// PutMany is [localStore.Put] for several records in one transaction.
func (s *localStore) PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	c, err := s.schema.Collection(collection)
	if err != nil {
		return nil, err
	}

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	stored := make([]models.Record, 0, len(records))
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range records {
			withKey, err := assignKeyTx(ctx, tx, c, rec)
			if err != nil {
				return err
			}
			if err = putRecordTx(ctx, tx, c, withKey); err != nil {
				return err
			}
			if c.SyncEnabled {
				if _, err = s.queue.enqueueTx(ctx, tx, c.Name, models.OpUpsert, withKey); err != nil {
					return err
				}
			}
			stored = append(stored, withKey)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStore.PutMany").
			Str("collection", collection).
			Int("records", len(records)).
			Msg("failed to put records")
		return nil, err
	}

	return stored, nil
}

// GetByID returns the record stored under key or [models.ErrNotFound].
func (s *localStore) GetByID(ctx context.Context, collection string, key any) (models.Record, error) {
	log := logger.FromContext(ctx)

	if _, err := s.schema.Collection(collection); err != nil {
		return nil, err
	}

	encodedKey, err := schema.EncodeValue(key)
	if err != nil {
		return nil, err
	}

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var doc []byte
	err = db.QueryRowContext(ctx, selectRecord, collection, encodedKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, encodedKey)
	}
	if err != nil {
		log.Err(err).
			Str("func", "localStore.GetByID").
			Str("collection", collection).
			Str("key", encodedKey).
			Msg("failed to query record")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return decodeRecord(doc)
}

// GetAll returns every record of collection in key order: numeric keys
// ascending first, then the rest by their encoded form.
func (s *localStore) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	if _, err := s.schema.Collection(collection); err != nil {
		return nil, err
	}

	query, args, err := buildGetAllQuery(collection)
	if err != nil {
		return nil, err
	}

	return s.queryDocs(ctx, "localStore.GetAll", collection, query, args)
}

// GetByIndex returns all records whose indexed field equals value.
func (s *localStore) GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	if _, _, err := s.schema.Index(collection, index); err != nil {
		return nil, err
	}

	encoded, err := schema.EncodeValue(value)
	if err != nil {
		return nil, err
	}

	query, args, err := buildGetByIndexQuery(collection, index, encoded)
	if err != nil {
		return nil, err
	}

	return s.queryDocs(ctx, "localStore.GetByIndex", collection, query, args)
}

// Remove deletes the record under key. Removing an absent key is not an
// error; for sync-enabled collections the delete is still queued so the
// remote copy converges.
func (s *localStore) Remove(ctx context.Context, collection string, key any) error {
	log := logger.FromContext(ctx)

	c, err := s.schema.Collection(collection)
	if err != nil {
		return err
	}

	encodedKey, err := schema.EncodeValue(key)
	if err != nil {
		return err
	}

	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err := removeRecordTx(ctx, tx, c.Name, encodedKey); err != nil {
			return err
		}
		if c.SyncEnabled {
			if _, err := s.queue.enqueueTx(ctx, tx, c.Name, models.OpDelete, c.KeyRecord(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStore.Remove").
			Str("collection", collection).
			Str("key", encodedKey).
			Msg("failed to remove record")
		return err
	}

	return nil
}

// Clear removes every record of collection. Nothing is queued; for
// sync-enabled collections the watermark is reset so the next pull fetches
// the full remote collection again.
func (s *localStore) Clear(ctx context.Context, collection string) error {
	log := logger.FromContext(ctx)

	c, err := s.schema.Collection(collection)
	if err != nil {
		return err
	}

	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteCollectionIndexRows, c.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, deleteCollectionRecords, c.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if c.SyncEnabled {
			if _, err := tx.ExecContext(ctx, deleteMeta, watermarkKey(c.Name)); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStore.Clear").
			Str("collection", collection).
			Msg("failed to clear collection")
		return err
	}

	return nil
}

// ApplyRemote writes pulled records and removes keys deleted remotely in one
// transaction. It is the only write path that does not touch the queue.
func (s *localStore) ApplyRemote(ctx context.Context, collection string, upserts []models.Record, deleted []any) (ApplyResult, error) {
	log := logger.FromContext(ctx)

	c, err := s.schema.Collection(collection)
	if err != nil {
		return ApplyResult{}, err
	}

	db, err := s.conn(ctx)
	if err != nil {
		return ApplyResult{}, err
	}

	var result ApplyResult
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range upserts {
			key, ok := c.KeyOf(rec)
			if !ok {
				return fmt.Errorf("%w: remote record without %q in collection %q", models.ErrValidation, c.KeyPath, c.Name)
			}
			if err := bumpSequenceTx(ctx, tx, c, key); err != nil {
				return err
			}
			if err := putRecordTx(ctx, tx, c, rec); err != nil {
				return err
			}
			result.Upserted++
		}

		for _, key := range deleted {
			encodedKey, err := schema.EncodeValue(key)
			if err != nil {
				return err
			}
			if err = removeRecordTx(ctx, tx, c.Name, encodedKey); err != nil {
				return err
			}
			result.Removed++
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStore.ApplyRemote").
			Str("collection", collection).
			Int("upserts", len(upserts)).
			Int("deleted", len(deleted)).
			Msg("failed to apply remote changes")
		return ApplyResult{}, err
	}

	return result, nil
}

// SaveSetting stores value under key in the settings collection.
func (s *localStore) SaveSetting(ctx context.Context, key string, value any) error {
	c, err := s.schema.Collection(schema.Settings)
	if err != nil {
		return err
	}

	_, err = s.Put(ctx, c.Name, models.Record{c.KeyPath: key, "value": value})
	return err
}

// Setting returns the value saved under key and whether it exists.
func (s *localStore) Setting(ctx context.Context, key string) (any, bool, error) {
	rec, err := s.GetByID(ctx, schema.Settings, key)
	if errors.Is(err, models.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec["value"], true, nil
}

func (s *localStore) queryDocs(ctx context.Context, fn, collection, query string, args []any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var doc []byte
		if err = rows.Scan(&doc); err != nil {
			log.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec, err := decodeRecord(doc)
		if err != nil {
			log.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to decode record")
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Str("collection", collection).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// assignKeyTx returns rec with its primary key set. The input is not modified.
func assignKeyTx(ctx context.Context, tx *sql.Tx, c schema.Collection, rec models.Record) (models.Record, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record for collection %q", models.ErrValidation, c.Name)
	}

	out := rec.Clone()
	if key, ok := c.KeyOf(out); ok {
		return out, bumpSequenceTx(ctx, tx, c, key)
	}

	switch c.Key {
	case schema.KeySequence:
		var next int64
		if err := tx.QueryRowContext(ctx, selectNextSequence, c.Name).Scan(&next); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if _, err := tx.ExecContext(ctx, bumpNextSequence, next+1, c.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		out[c.KeyPath] = next
	case schema.KeyUUID:
		out[c.KeyPath] = uuid.NewString()
	default:
		return nil, fmt.Errorf("%w: record without %q in collection %q", models.ErrValidation, c.KeyPath, c.Name)
	}

	return out, nil
}

// bumpSequenceTx keeps generated keys above explicitly supplied integer keys.
func bumpSequenceTx(ctx context.Context, tx *sql.Tx, c schema.Collection, key any) error {
	if c.Key != schema.KeySequence {
		return nil
	}
	n, ok := integerKey(key)
	if !ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, bumpNextSequence, n+1, c.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func putRecordTx(ctx context.Context, tx *sql.Tx, c schema.Collection, rec models.Record) error {
	key, _ := c.KeyOf(rec)

	encodedKey, err := schema.EncodeValue(key)
	if err != nil {
		return err
	}
	doc, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, upsertRecord, c.Name, encodedKey, numericKey(key), doc); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRecordIndexEntries, c.Name, encodedKey); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return insertIndexEntriesTx(ctx, tx, c.Name, encodedKey, c.Indexes, rec)
}

func removeRecordTx(ctx context.Context, tx *sql.Tx, collection, encodedKey string) error {
	if _, err := tx.ExecContext(ctx, deleteRecordIndexEntries, collection, encodedKey); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err := tx.ExecContext(ctx, deleteRecord, collection, encodedKey); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
