// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// recordRepository is the Postgres implementation of [RecordRepository].
//
// Every write takes an exclusive transaction-scoped advisory lock on the
// collection and every change-feed read a shared one. Revisions come from a
// global sequence, so once a reader holds the lock no lower revision of the
// collection can still be uncommitted and the returned server_time never
// skips a change.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// ApplyBatch applies all mutations of batch in one transaction. The ordered
// operation list is used when present, otherwise upserts then deletes.
// Re-applying the same batch leaves the same state.
func (r *recordRepository) ApplyBatch(ctx context.Context, c schema.Collection, batch models.BatchRequest) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	ops, err := batchOperations(c, batch)
	if err != nil {
		return models.BatchResponse{}, err
	}

	var resp models.BatchResponse
	err = withRetry(ctx, r.errorClassificator, func(ctx context.Context) error {
		return r.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, lockCollectionExclusive, c.Name); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			for _, op := range ops {
				if err := applyOperationTx(ctx, tx, c, op); err != nil {
					return err
				}
			}

			revision, err := collectionRevisionTx(ctx, tx, c.Name)
			if err != nil {
				return err
			}
			resp = models.BatchResponse{Applied: len(ops), ServerTime: strconv.FormatInt(revision, 10)}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ApplyBatch").
			Str("collection", c.Name).
			Int("operations", len(ops)).
			Str("pg_code", postgresError(err)).
			Msg("failed to apply batch")
		return models.BatchResponse{}, err
	}

	return resp, nil
}

// Changes returns the records changed after since and the keys deleted after
// since. Without since it returns the whole live collection.
func (r *recordRepository) Changes(ctx context.Context, c schema.Collection, since *int64) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	resp := models.ChangesResponse{
		Changes: make([]models.Record, 0),
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, lockCollectionShared, c.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		revision, err := collectionRevisionTx(ctx, tx, c.Name)
		if err != nil {
			return err
		}
		resp.ServerTime = strconv.FormatInt(revision, 10)

		query, args, err := buildChangesQuery(c.Name, since, revision)
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				key      string
				doc      []byte
				deleted  bool
				revision int64
			)
			if err = rows.Scan(&key, &doc, &deleted, &revision); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}

			if deleted {
				decodedKey, err := schema.DecodeValue(key)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
				}
				resp.Deleted = append(resp.Deleted, decodedKey)
				continue
			}

			rec, err := decodeRecord(doc)
			if err != nil {
				return err
			}
			resp.Changes = append(resp.Changes, rec)
		}

		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Changes").
			Str("collection", c.Name).
			Msg("failed to read changes")
		return models.ChangesResponse{}, err
	}

	return resp, nil
}

// Get returns a live record or [models.ErrNotFound].
func (r *recordRepository) Get(ctx context.Context, c schema.Collection, key any) (models.Record, error) {
	log := logger.FromContext(ctx)

	encodedKey, err := schema.EncodeValue(key)
	if err != nil {
		return nil, err
	}

	var doc []byte
	err = r.QueryRowContext(ctx, selectRemoteRecord, c.Name, encodedKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, c.Name, encodedKey)
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("collection", c.Name).
			Str("key", encodedKey).
			Msg("failed to query record")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return decodeRecord(doc)
}

// List returns the live records of a collection ordered by key.
func (r *recordRepository) List(ctx context.Context, c schema.Collection) ([]models.Record, error) {
	query, args, err := buildListRemoteQuery(c.Name)
	if err != nil {
		return nil, err
	}
	return r.queryDocs(ctx, "recordRepository.List", c.Name, query, args)
}

// FindByField returns the live records whose top-level field equals value.
func (r *recordRepository) FindByField(ctx context.Context, c schema.Collection, field string, value any) ([]models.Record, error) {
	encoded, err := schema.EncodeValue(value)
	if err != nil {
		return nil, err
	}

	query, args, err := buildFindByFieldQuery(c.Name, field, encoded)
	if err != nil {
		return nil, err
	}
	return r.queryDocs(ctx, "recordRepository.FindByField", c.Name, query, args)
}

// Put upserts records. Records without a key get one assigned under the
// collection lock: the next integer after every key ever used for
// sequence collections, a UUID for UUID collections.
func (r *recordRepository) Put(ctx context.Context, c schema.Collection, records ...models.Record) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	var stored []models.Record
	err := withRetry(ctx, r.errorClassificator, func(ctx context.Context) error {
		stored = make([]models.Record, 0, len(records))
		return r.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, lockCollectionExclusive, c.Name); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			var next int64
			for _, rec := range records {
				rec = rec.Clone()
				if _, ok := c.KeyOf(rec); !ok {
					switch c.Key {
					case schema.KeySequence:
						if next == 0 {
							if err := tx.QueryRowContext(ctx, selectMaxSequenceKey, c.Name).Scan(&next); err != nil {
								return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
							}
						}
						next++
						rec[c.KeyPath] = next
					case schema.KeyUUID:
						rec[c.KeyPath] = uuid.NewString()
					default:
						return fmt.Errorf("%w: record without %q", models.ErrValidation, c.KeyPath)
					}
				} else if c.Key == schema.KeySequence && next != 0 {
					if k, isInt := integerKey(rec[c.KeyPath]); isInt && k > next {
						next = k
					}
				}

				op, err := newKeyedOperation(models.OpUpsert, rec[c.KeyPath], rec)
				if err != nil {
					return err
				}
				if err = applyOperationTx(ctx, tx, c, op); err != nil {
					return err
				}
				stored = append(stored, rec)
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Put").
			Str("collection", c.Name).
			Int("records", len(records)).
			Str("pg_code", postgresError(err)).
			Msg("failed to put records")
		return nil, err
	}

	return stored, nil
}

// Delete tombstones the record under key. Deleting an absent key is a no-op.
func (r *recordRepository) Delete(ctx context.Context, c schema.Collection, key any) error {
	_, err := r.ApplyBatch(ctx, c, models.BatchRequest{Deletes: []any{key}})
	return err
}

// Clear tombstones every live record of the collection.
func (r *recordRepository) Clear(ctx context.Context, c schema.Collection) error {
	log := logger.FromContext(ctx)

	err := withRetry(ctx, r.errorClassificator, func(ctx context.Context) error {
		return r.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, lockCollectionExclusive, c.Name); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if _, err := tx.ExecContext(ctx, tombstoneRemoteCollection, c.Name); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Clear").Str("collection", c.Name).Msg("failed to clear collection")
		return err
	}
	return nil
}

// Ping checks the database connection.
func (r *recordRepository) Ping(ctx context.Context) error {
	if _, err := r.ExecContext(ctx, pingQuery); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *recordRepository) queryDocs(ctx context.Context, fn, collection, query string, args []any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
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

// keyedOperation is a batch entry with its key already encoded.
type keyedOperation struct {
	op     models.Operation
	key    string
	record models.Record
}

// batchOperations validates batch and flattens it into apply order.
func batchOperations(c schema.Collection, batch models.BatchRequest) ([]keyedOperation, error) {
	ops := make([]keyedOperation, 0, batch.Len())

	if len(batch.Operations) > 0 {
		for _, o := range batch.Operations {
			key := o.Key
			if o.Op == models.OpUpsert {
				recKey, ok := c.KeyOf(o.Record)
				if !ok {
					return nil, fmt.Errorf("%w: upsert without %q", models.ErrValidation, c.KeyPath)
				}
				key = recKey
			}
			op, err := newKeyedOperation(o.Op, key, o.Record)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
		return ops, nil
	}

	for _, rec := range batch.Upserts {
		key, ok := c.KeyOf(rec)
		if !ok {
			return nil, fmt.Errorf("%w: upsert without %q", models.ErrValidation, c.KeyPath)
		}
		op, err := newKeyedOperation(models.OpUpsert, key, rec)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	for _, key := range batch.Deletes {
		op, err := newKeyedOperation(models.OpDelete, key, nil)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func newKeyedOperation(op models.Operation, key any, rec models.Record) (keyedOperation, error) {
	if !op.Valid() {
		return keyedOperation{}, fmt.Errorf("%w: unknown operation %q", models.ErrValidation, op)
	}
	if key == nil {
		return keyedOperation{}, fmt.Errorf("%w: %s without key", models.ErrValidation, op)
	}
	encoded, err := schema.EncodeValue(key)
	if err != nil {
		return keyedOperation{}, err
	}
	return keyedOperation{op: op, key: encoded, record: rec}, nil
}

func applyOperationTx(ctx context.Context, tx *sql.Tx, c schema.Collection, op keyedOperation) error {
	switch op.op {
	case models.OpUpsert:
		doc, err := encodeRecord(op.record)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, upsertRemoteRecord, c.Name, op.key, doc); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	case models.OpDelete:
		if _, err := tx.ExecContext(ctx, tombstoneRemoteRecord, c.Name, op.key); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}

func collectionRevisionTx(ctx context.Context, tx *sql.Tx, collection string) (int64, error) {
	var revision int64
	if err := tx.QueryRowContext(ctx, selectCollectionRevision, collection).Scan(&revision); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return revision, nil
}
