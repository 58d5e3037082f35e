// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// acknowledgeChunk bounds the number of ids bound to one DELETE statement.
const acknowledgeChunk = 500

// changeQueue is the SQLite implementation of [ChangeQueue]. Entry ids come
// from an AUTOINCREMENT column and are never reused, even after the entries
// were acknowledged.
type changeQueue struct {
	*localHandle
	now func() time.Time
}

// Enqueue appends an entry for a sync-enabled collection.
func (q *changeQueue) Enqueue(ctx context.Context, collection string, op models.Operation, payload models.Record) (models.ChangeEntry, error) {
	log := logger.FromContext(ctx)

	db, err := q.conn(ctx)
	if err != nil {
		return models.ChangeEntry{}, err
	}

	var entry models.ChangeEntry
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		entry, txErr = q.enqueueTx(ctx, tx, collection, op, payload)
		return txErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "changeQueue.Enqueue").
			Str("collection", collection).
			Str("operation", string(op)).
			Msg("failed to enqueue change")
		return models.ChangeEntry{}, err
	}

	return entry, nil
}

// EnqueueMany appends an entry per payload, keeping the slice order.
func (q *changeQueue) EnqueueMany(ctx context.Context, collection string, op models.Operation, payloads []models.Record) ([]models.ChangeEntry, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)

	db, err := q.conn(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ChangeEntry, 0, len(payloads))
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for _, payload := range payloads {
			entry, txErr := q.enqueueTx(ctx, tx, collection, op, payload)
			if txErr != nil {
				return txErr
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "changeQueue.EnqueueMany").
			Str("collection", collection).
			Str("operation", string(op)).
			Int("count", len(payloads)).
			Msg("failed to enqueue changes")
		return nil, err
	}

	return entries, nil
}

func (q *changeQueue) enqueueTx(ctx context.Context, tx *sql.Tx, collection string, op models.Operation, payload models.Record) (models.ChangeEntry, error) {
	c, err := q.schema.Collection(collection)
	if err != nil {
		return models.ChangeEntry{}, err
	}
	if !c.SyncEnabled {
		return models.ChangeEntry{}, fmt.Errorf("%w: collection %q is not synchronised", models.ErrValidation, collection)
	}
	if !op.Valid() {
		return models.ChangeEntry{}, fmt.Errorf("%w: unknown operation %q", models.ErrValidation, op)
	}
	if _, ok := c.KeyOf(payload); !ok {
		return models.ChangeEntry{}, fmt.Errorf("%w: change payload without %q", models.ErrValidation, c.KeyPath)
	}

	data, err := encodeRecord(payload)
	if err != nil {
		return models.ChangeEntry{}, err
	}

	enqueuedAt := q.now().UTC()
	res, err := tx.ExecContext(ctx, insertChange, collection, string(op), data, enqueuedAt.Format(time.RFC3339Nano))
	if err != nil {
		return models.ChangeEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ChangeEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.ChangeEntry{
		ID:         id,
		Collection: collection,
		Operation:  op,
		Payload:    payload.Clone(),
		EnqueuedAt: enqueuedAt,
	}, nil
}

// Drain returns the pending entries of collection in enqueue order.
func (q *changeQueue) Drain(ctx context.Context, collection string) ([]models.ChangeEntry, error) {
	log := logger.FromContext(ctx)

	if _, err := q.schema.Collection(collection); err != nil {
		return nil, err
	}

	db, err := q.conn(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildDrainQuery(collection)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "changeQueue.Drain").Str("collection", collection).Msg("failed to query change queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ChangeEntry, 0)
	for rows.Next() {
		var (
			entry      models.ChangeEntry
			op         string
			payload    []byte
			enqueuedAt string
		)
		if err = rows.Scan(&entry.ID, &entry.Collection, &op, &payload, &enqueuedAt); err != nil {
			log.Err(err).Str("func", "changeQueue.Drain").Str("collection", collection).Msg("failed to scan change row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entry.Operation = models.Operation(op)
		if entry.Payload, err = decodeRecord(payload); err != nil {
			log.Err(err).Str("func", "changeQueue.Drain").Int64("id", entry.ID).Msg("failed to decode change payload")
			return nil, err
		}
		if entry.EnqueuedAt, err = time.Parse(time.RFC3339Nano, enqueuedAt); err != nil {
			log.Err(err).Str("func", "changeQueue.Drain").Int64("id", entry.ID).Msg("failed to parse enqueue time")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "changeQueue.Drain").Str("collection", collection).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Acknowledge removes the given entries in one transaction. Unknown ids are
// ignored, so acknowledging twice is harmless.
func (q *changeQueue) Acknowledge(ctx context.Context, ids []int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	db, err := q.conn(ctx)
	if err != nil {
		return err
	}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(ids); start += acknowledgeChunk {
			end := min(start+acknowledgeChunk, len(ids))

			query, args, err := buildAcknowledgeQuery(ids[start:end])
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "changeQueue.Acknowledge").Ints64("ids", ids).Msg("failed to acknowledge changes")
		return err
	}

	return nil
}

// Pending returns the number of queued entries per collection.
func (q *changeQueue) Pending(ctx context.Context) ([]models.PendingChanges, error) {
	log := logger.FromContext(ctx)

	db, err := q.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, countPending)
	if err != nil {
		log.Err(err).Str("func", "changeQueue.Pending").Msg("failed to count pending changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	pending := make([]models.PendingChanges, 0)
	for rows.Next() {
		var p models.PendingChanges
		if err = rows.Scan(&p.Collection, &p.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		pending = append(pending, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pending, nil
}
