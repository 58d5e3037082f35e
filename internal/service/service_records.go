// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

type recordService struct {
	recordRepository store.RecordRepository
	schema           *schema.Schema

	now    func() time.Time
	logger *logger.Logger
}

// NewRecordService builds the server record service over the authoritative
// repository. Collections outside s are rejected with [models.ErrValidation].
func NewRecordService(recordRepository store.RecordRepository, s *schema.Schema, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		schema:           s,
		now:              time.Now,
		logger:           logger,
	}
}

func (r *recordService) ApplyBatch(ctx context.Context, collection string, batch models.BatchRequest) (models.BatchResponse, error) {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return models.BatchResponse{}, err
	}
	return r.recordRepository.ApplyBatch(ctx, coll, batch)
}

func (r *recordService) Changes(ctx context.Context, collection, since string) (models.ChangesResponse, error) {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return models.ChangesResponse{}, err
	}

	watermark, err := parseWatermark(since)
	if err != nil {
		return models.ChangesResponse{}, err
	}
	return r.recordRepository.Changes(ctx, coll, watermark)
}

// parseWatermark decodes a server_time issued by Changes or ApplyBatch.
// An empty value means no watermark.
func parseWatermark(since string) (*int64, error) {
	if since == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(since, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWatermark, since)
	}
	return &v, nil
}

func (r *recordService) Get(ctx context.Context, collection string, key any) (models.Record, error) {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return nil, err
	}
	return r.recordRepository.Get(ctx, coll, key)
}

func (r *recordService) List(ctx context.Context, collection string) ([]models.Record, error) {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return nil, err
	}
	return r.recordRepository.List(ctx, coll)
}

func (r *recordService) FindByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	coll, idx, err := r.schema.Index(collection, index)
	if err != nil {
		return nil, err
	}
	return r.recordRepository.FindByField(ctx, coll, idx.Field, value)
}

func (r *recordService) Put(ctx context.Context, collection string, records ...models.Record) ([]models.Record, error) {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return nil, err
	}
	return r.recordRepository.Put(ctx, coll, records...)
}

func (r *recordService) Delete(ctx context.Context, collection string, key any) error {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return err
	}
	return r.recordRepository.Delete(ctx, coll, key)
}

func (r *recordService) Clear(ctx context.Context, collection string) error {
	coll, err := r.schema.Collection(collection)
	if err != nil {
		return err
	}
	return r.recordRepository.Clear(ctx, coll)
}

func (r *recordService) Ping(ctx context.Context) (models.PingResponse, error) {
	if err := r.recordRepository.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordService.Ping").Msg("database is unreachable")
		return models.PingResponse{}, err
	}
	return models.PingResponse{
		Status:     "ok",
		ServerTime: r.now().UTC().Format(time.RFC3339Nano),
	}, nil
}
