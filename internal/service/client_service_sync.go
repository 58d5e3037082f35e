// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/shopfloor-sync/internal/adapter"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

type syncService struct {
	local  store.LocalStore
	queue  store.ChangeQueue
	meta   store.SyncMetaStore
	remote adapter.SyncClient
	schema *schema.Schema

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	logger *logger.Logger
}

// NewSyncService builds the sync orchestrator over the client stores and the
// remote sync endpoints.
func NewSyncService(local store.LocalStore, queue store.ChangeQueue, meta store.SyncMetaStore, remote adapter.SyncClient, s *schema.Schema, logger *logger.Logger) SyncService {
	return &syncService{
		local:  local,
		queue:  queue,
		meta:   meta,
		remote: remote,
		schema: s,
		locks:  make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// SyncAll implements SyncService.
func (s *syncService) SyncAll(ctx context.Context) models.SyncReport {
	names := s.schema.SyncCollectionNames()
	report := models.SyncReport{Collections: make([]models.CollectionReport, 0, len(names))}

	for _, name := range names {
		report.Collections = append(report.Collections, s.SyncCollection(ctx, name))
	}

	if failed := report.Failed(); len(failed) > 0 {
		s.logger.Warn().
			Int("failed", len(failed)).
			Int("collections", len(names)).
			Msg("sync finished with failures")
	}
	return report
}

// SyncCollection implements SyncService.
func (s *syncService) SyncCollection(ctx context.Context, collection string) models.CollectionReport {
	report := models.CollectionReport{Collection: collection}

	fail := func(err error) models.CollectionReport {
		report.Err = err
		report.Error = err.Error()
		return report
	}

	if _, err := s.syncCollection(collection); err != nil {
		return fail(err)
	}

	unlock, err := s.tryLock(collection)
	if err != nil {
		return fail(err)
	}
	defer unlock()

	report.Pushed, err = s.push(ctx, collection)
	if err != nil {
		return fail(err)
	}

	pulled, err := s.pull(ctx, collection)
	if err != nil {
		return fail(err)
	}
	report.Pulled = pulled.Upserted
	report.Removed = pulled.Removed
	report.Watermark = pulled.Watermark

	s.logger.Debug().
		Str("collection", collection).
		Int("pushed", report.Pushed).
		Int("pulled", report.Pulled).
		Int("removed", report.Removed).
		Str("watermark", report.Watermark).
		Msg("collection synced")
	return report
}

// Push implements SyncService.
func (s *syncService) Push(ctx context.Context, collection string) (int, error) {
	if _, err := s.syncCollection(collection); err != nil {
		return 0, err
	}
	unlock, err := s.tryLock(collection)
	if err != nil {
		return 0, err
	}
	defer unlock()

	return s.push(ctx, collection)
}

// Pull implements SyncService.
func (s *syncService) Pull(ctx context.Context, collection string) (models.PullResult, error) {
	if _, err := s.syncCollection(collection); err != nil {
		return models.PullResult{}, err
	}
	unlock, err := s.tryLock(collection)
	if err != nil {
		return models.PullResult{}, err
	}
	defer unlock()

	return s.pull(ctx, collection)
}

func (s *syncService) push(ctx context.Context, collection string) (int, error) {
	log := s.logger.With().Str("func", "syncService.push").Str("collection", collection).Logger()

	entries, err := s.queue.Drain(ctx, collection)
	if err != nil {
		log.Err(err).Msg("drain change queue failed")
		return 0, fmt.Errorf("drain change queue: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	coll, err := s.schema.Collection(collection)
	if err != nil {
		return 0, err
	}

	batch, ids, err := buildBatch(coll, entries)
	if err != nil {
		log.Err(err).Msg("build batch failed")
		return 0, err
	}

	if _, err = s.remote.ApplyBatch(ctx, collection, batch); err != nil {
		log.Err(err).Int("entries", len(entries)).Msg("push batch failed")
		return 0, fmt.Errorf("push batch: %w", err)
	}

	if err = s.queue.Acknowledge(ctx, ids); err != nil {
		// the remote already has the batch; replaying it on the next push is harmless
		log.Err(err).Ints64("ids", ids).Msg("acknowledge pushed entries failed")
		return 0, fmt.Errorf("acknowledge pushed entries: %w", err)
	}

	return len(entries), nil
}

// buildBatch turns drained entries into a batch request. Upserts and Deletes
// keep the enqueue order within each kind; Operations keeps the overall order.
func buildBatch(coll schema.Collection, entries []models.ChangeEntry) (models.BatchRequest, []int64, error) {
	batch := models.BatchRequest{
		Upserts:    make([]models.Record, 0, len(entries)),
		Deletes:    make([]any, 0),
		Operations: make([]models.BatchOperation, 0, len(entries)),
	}
	ids := make([]int64, 0, len(entries))

	for _, e := range entries {
		key, ok := coll.KeyOf(e.Payload)
		if !ok {
			return models.BatchRequest{}, nil, fmt.Errorf("%w: change %d of %q has no key", models.ErrValidation, e.ID, coll.Name)
		}

		switch e.Operation {
		case models.OpUpsert:
			batch.Upserts = append(batch.Upserts, e.Payload)
			batch.Operations = append(batch.Operations, models.BatchOperation{Op: models.OpUpsert, Key: key, Record: e.Payload})
		case models.OpDelete:
			batch.Deletes = append(batch.Deletes, key)
			batch.Operations = append(batch.Operations, models.BatchOperation{Op: models.OpDelete, Key: key})
		default:
			return models.BatchRequest{}, nil, fmt.Errorf("%w: change %d has operation %q", models.ErrValidation, e.ID, e.Operation)
		}
		ids = append(ids, e.ID)
	}

	return batch, ids, nil
}

func (s *syncService) pull(ctx context.Context, collection string) (models.PullResult, error) {
	log := s.logger.With().Str("func", "syncService.pull").Str("collection", collection).Logger()

	since, err := s.meta.Watermark(ctx, collection)
	if err != nil {
		log.Err(err).Msg("read watermark failed")
		return models.PullResult{}, fmt.Errorf("read watermark: %w", err)
	}

	changes, err := s.remote.Changes(ctx, collection, since)
	if err != nil {
		log.Err(err).Msg("fetch remote changes failed")
		return models.PullResult{}, fmt.Errorf("fetch remote changes: %w", err)
	}

	applied, err := s.local.ApplyRemote(ctx, collection, changes.Changes, changes.Deleted)
	if err != nil {
		log.Err(err).Int("changes", len(changes.Changes)).Msg("apply remote changes failed")
		return models.PullResult{}, fmt.Errorf("apply remote changes: %w", err)
	}

	if err = s.meta.SetWatermark(ctx, collection, changes.ServerTime); err != nil {
		log.Err(err).Str("watermark", changes.ServerTime).Msg("advance watermark failed")
		return models.PullResult{}, fmt.Errorf("advance watermark: %w", err)
	}

	return models.PullResult{
		Upserted:  applied.Upserted,
		Removed:   applied.Removed,
		Watermark: changes.ServerTime,
	}, nil
}

func (s *syncService) syncCollection(name string) (schema.Collection, error) {
	coll, err := s.schema.Collection(name)
	if err != nil {
		return schema.Collection{}, err
	}
	if !coll.SyncEnabled {
		return schema.Collection{}, fmt.Errorf("%w: %q", ErrCollectionNotSynced, name)
	}
	return coll, nil
}

// tryLock takes the per-collection sync lock without waiting.
func (s *syncService) tryLock(collection string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	if !l.TryLock() {
		return nil, fmt.Errorf("%w: %q", models.ErrSyncInProgress, collection)
	}
	return l.Unlock, nil
}

// IsRetryable reports whether a failed cycle may succeed when run again
// without any change on the caller's side.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, models.ErrValidation)
}
