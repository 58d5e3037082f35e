// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// Domain error kinds shared by the client and the server. Packages wrap them
// with context; callers match with [errors.Is].
var (
	// ErrValidation marks programmer errors such as an unknown collection or
	// index, a reserved collection name, or a record without a primary key.
	// They are never retried.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a record with the requested key does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrProviderUnavailable is returned when neither the remote nor the local
	// provider could be initialised. All data access fails until resolved.
	ErrProviderUnavailable = errors.New("no data provider available")

	// ErrNetwork marks a failed remote call (transport error or non-2xx
	// response). The queue and watermark are untouched, so it is safe to retry.
	ErrNetwork = errors.New("network error")

	// ErrSyncInProgress is reported when a sync cycle is requested for a
	// collection whose previous cycle has not finished.
	ErrSyncInProgress = errors.New("sync already in progress for collection")
)
