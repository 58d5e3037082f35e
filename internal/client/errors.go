// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrSyncIntervalNotSet = errors.New("sync interval is not set; pass --sync-interval or set WORKERS_SYNC_INTERVAL")
	ErrUnknownProvider    = errors.New("provider must be \"remote\" or \"local\"")
	ErrInvalidFormat      = errors.New("format must be \"text\" or \"json\"")
	ErrSyncFailed         = errors.New("sync failed for some collections")
)
