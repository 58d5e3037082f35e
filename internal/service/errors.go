// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/models"
)

var (
	// ErrCollectionNotSynced is returned when a sync is requested for a
	// local-only collection.
	ErrCollectionNotSynced = fmt.Errorf("%w: collection is not sync-enabled", models.ErrValidation)

	// ErrInvalidWatermark is returned for a since value the server never issued.
	ErrInvalidWatermark = fmt.Errorf("%w: invalid since watermark", models.ErrValidation)

	// ErrNoRecordsProvided is returned by batch puts without records.
	ErrNoRecordsProvided = errors.New("no records provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
