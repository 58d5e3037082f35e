// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/models"
)

// RecordServiceWrapper decorates a RecordService.
type RecordServiceWrapper interface {
	RecordService
	Wrap(inner RecordService) RecordService
}

// RecordValidationService rejects malformed requests before they reach the
// wrapped service.
type RecordValidationService struct {
	inner RecordService
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{}
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *RecordValidationService) ApplyBatch(ctx context.Context, collection string, batch models.BatchRequest) (models.BatchResponse, error) {
	if err := validateBatch(batch); err != nil {
		return models.BatchResponse{}, err
	}
	return v.inner.ApplyBatch(ctx, collection, batch)
}

func validateBatch(batch models.BatchRequest) error {
	for i, op := range batch.Operations {
		if !op.Op.Valid() {
			return fmt.Errorf("%w: operation %d has unknown op %q", models.ErrValidation, i, op.Op)
		}
		if op.Op == models.OpUpsert && op.Record == nil {
			return fmt.Errorf("%w: upsert operation %d has no record", models.ErrValidation, i)
		}
		if op.Key == nil {
			return fmt.Errorf("%w: operation %d has no key", models.ErrValidation, i)
		}
	}
	for i, rec := range batch.Upserts {
		if rec == nil {
			return fmt.Errorf("%w: upsert %d is null", models.ErrValidation, i)
		}
	}
	for i, key := range batch.Deletes {
		if key == nil {
			return fmt.Errorf("%w: delete %d has no key", models.ErrValidation, i)
		}
	}
	return nil
}

func (v *RecordValidationService) Changes(ctx context.Context, collection, since string) (models.ChangesResponse, error) {
	return v.inner.Changes(ctx, collection, since)
}

func (v *RecordValidationService) Get(ctx context.Context, collection string, key any) (models.Record, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: empty key", models.ErrValidation)
	}
	return v.inner.Get(ctx, collection, key)
}

func (v *RecordValidationService) List(ctx context.Context, collection string) ([]models.Record, error) {
	return v.inner.List(ctx, collection)
}

func (v *RecordValidationService) FindByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	return v.inner.FindByIndex(ctx, collection, index, value)
}

func (v *RecordValidationService) Put(ctx context.Context, collection string, records ...models.Record) ([]models.Record, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", models.ErrValidation, ErrNoRecordsProvided)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: record %d is null", models.ErrValidation, i)
		}
	}
	return v.inner.Put(ctx, collection, records...)
}

func (v *RecordValidationService) Delete(ctx context.Context, collection string, key any) error {
	if key == nil {
		return fmt.Errorf("%w: empty key", models.ErrValidation)
	}
	return v.inner.Delete(ctx, collection, key)
}

func (v *RecordValidationService) Clear(ctx context.Context, collection string) error {
	return v.inner.Clear(ctx, collection)
}

func (v *RecordValidationService) Ping(ctx context.Context) (models.PingResponse, error) {
	return v.inner.Ping(ctx)
}
