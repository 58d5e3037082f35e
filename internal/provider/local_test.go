// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

func TestLocal_ServesTheLocalStore(t *testing.T) {
	ctx := context.Background()
	storages := store.NewClientStorages(
		config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "local.db")}},
		schema.Default(),
		logger.Nop(),
	)

	local := NewLocal(storages.Local)
	require.Equal(t, models.ProviderLocal, local.Kind())
	require.NoError(t, local.Init(ctx))
	t.Cleanup(func() { _ = local.Close() })

	stored, err := local.Put(ctx, schema.Machines, models.Record{"name": "lathe"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored["id"])

	_, err = local.PutMany(ctx, schema.Orders, []models.Record{
		{"id": "A1", "customer": "ACME"},
		{"id": "A2", "customer": "Globex"},
	})
	require.NoError(t, err)

	byIndex, err := local.GetByIndex(ctx, schema.Orders, "customer", "ACME")
	require.NoError(t, err)
	require.Len(t, byIndex, 1)

	require.NoError(t, local.Remove(ctx, schema.Orders, "A1"))
	_, err = local.GetByID(ctx, schema.Orders, "A1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, local.Clear(ctx, schema.Orders))
	all, err := local.GetAll(ctx, schema.Orders)
	require.NoError(t, err)
	assert.Empty(t, all)

	// sync-enabled writes were queued by the store
	pending, err := storages.Queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, schema.Orders, pending[0].Collection)
	assert.Equal(t, 3, pending[0].Count)
}
