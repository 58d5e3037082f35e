// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the remote store's HTTP contract.
//
// [RemoteStore] serves two roles: it is the remote data provider selected by
// the provider session, and it is the [SyncClient] the sync service pushes to
// and pulls from. Non-2xx responses are mapped to sentinel errors by
// mapHTTPError so callers can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/shopfloor-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_client_mock.go -package=mock

// SyncClient is the remote half of the push/pull protocol.
type SyncClient interface {
	// Ping checks that the remote store is reachable and accepts the device token.
	Ping(ctx context.Context) (models.PingResponse, error)

	// ApplyBatch sends the drained changes of one collection. The remote
	// applies them as a unit: either every mutation is stored or none is.
	ApplyBatch(ctx context.Context, collection string, batch models.BatchRequest) (models.BatchResponse, error)

	// Changes returns the remote changes strictly after since. A nil since
	// requests the full current collection.
	Changes(ctx context.Context, collection string, since *string) (models.ChangesResponse, error)
}
