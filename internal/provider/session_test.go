// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/mock"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/models"
)

var (
	errRemoteDown = errors.New("dial tcp: connection refused")
	errDiskFull   = errors.New("disk full")
)

type sessionFixture struct {
	session *Session
	remote  *mock.MockProvider
	local   *mock.MockProvider
	queue   *mock.MockChangeQueue
}

func newTestSession(t *testing.T) sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	remote := mock.NewMockProvider(ctrl)
	local := mock.NewMockProvider(ctrl)
	queue := mock.NewMockChangeQueue(ctrl)

	remote.EXPECT().Kind().Return(models.ProviderRemote).AnyTimes()
	local.EXPECT().Kind().Return(models.ProviderLocal).AnyTimes()

	return sessionFixture{
		session: NewSession(remote, local, schema.Default(), queue, logger.Nop()),
		remote:  remote,
		local:   local,
		queue:   queue,
	}
}

// ── Resolve ─────────────────────────────────────────────────────────────────

func TestSession_Resolve_PreferredRemote(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)

	warning, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, warning)

	state := f.session.State()
	assert.Equal(t, models.ProviderRemote, state.Active)
	assert.True(t, state.Connected)
	assert.NoError(t, state.LastError)
}

func TestSession_Resolve_FallsBackToLocal(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(errRemoteDown)
	f.local.EXPECT().Init(ctx).Return(nil)

	warning, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, models.ProviderRemote, warning.Requested)
	assert.Equal(t, models.ProviderLocal, warning.Active)
	assert.ErrorIs(t, warning.Cause, errRemoteDown)
	assert.Contains(t, warning.String(), "using local")

	state := f.session.State()
	assert.Equal(t, models.ProviderLocal, state.Active)
	assert.False(t, state.Connected)
	assert.ErrorIs(t, state.LastError, errRemoteDown)

	// reads and writes go to the local provider without raising
	rec := models.Record{"id": "A1"}
	f.local.EXPECT().Put(ctx, schema.Orders, rec).Return(rec, nil)
	f.local.EXPECT().GetAll(ctx, schema.Orders).Return([]models.Record{rec}, nil)

	_, err = f.session.Put(ctx, schema.Orders, rec)
	require.NoError(t, err)
	all, err := f.session.GetAll(ctx, schema.Orders)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSession_Resolve_PreferredLocalFallsBackToRemote(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.local.EXPECT().Init(ctx).Return(errDiskFull)
	f.remote.EXPECT().Init(ctx).Return(nil)

	warning, err := f.session.Resolve(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, models.ProviderRemote, f.session.State().Active)
}

func TestSession_Resolve_BothFail(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(errRemoteDown)
	f.local.EXPECT().Init(ctx).Return(errDiskFull)

	warning, err := f.session.Resolve(ctx, true)
	assert.Nil(t, warning)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.ErrorIs(t, err, errRemoteDown)
	assert.ErrorIs(t, err, errDiskFull)

	_, err = f.session.GetAll(ctx, schema.Orders)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestSession_NoFallbackOnDataErrors(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	f.remote.EXPECT().GetByID(ctx, schema.Orders, "A1").Return(nil, models.ErrNetwork)

	_, err = f.session.GetByID(ctx, schema.Orders, "A1")
	assert.ErrorIs(t, err, models.ErrNetwork)
	assert.Equal(t, models.ProviderRemote, f.session.State().Active)
}

// ── Toggle ──────────────────────────────────────────────────────────────────

func TestSession_Toggle_Switches(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.local.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, false)
	require.NoError(t, err)

	f.remote.EXPECT().Init(ctx).Return(nil)
	res, err := f.session.Toggle(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Switched: true, Active: models.ProviderRemote}, res)
	assert.Equal(t, models.ProviderRemote, f.session.State().Active)
}

func TestSession_Toggle_RevertsOnFailure(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.local.EXPECT().Init(ctx).Return(nil).Times(2)
	_, err := f.session.Resolve(ctx, false)
	require.NoError(t, err)

	f.remote.EXPECT().Init(ctx).Return(errRemoteDown)
	res, err := f.session.Toggle(ctx, true)
	require.NoError(t, err)
	assert.False(t, res.Switched)
	assert.Equal(t, models.ProviderLocal, res.Active)
	assert.ErrorIs(t, res.Err, errRemoteDown)

	state := f.session.State()
	assert.Equal(t, models.ProviderLocal, state.Active)
	assert.ErrorIs(t, state.LastError, errRemoteDown)
}

func TestSession_Toggle_RevertFailsToo(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	gomock.InOrder(
		f.local.EXPECT().Init(ctx).Return(errDiskFull),
		f.remote.EXPECT().Init(ctx).Return(errRemoteDown),
	)

	res, err := f.session.Toggle(ctx, false)
	assert.False(t, res.Switched)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)

	_, err = f.session.Active()
	assert.ErrorIs(t, err, ErrNoActiveProvider)
}

// ── Write tracking ──────────────────────────────────────────────────────────

func TestSession_RemoteWritesToSyncCollectionsAreQueued(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	rec := models.Record{"id": "A1", "qty": 5}
	gomock.InOrder(
		f.remote.EXPECT().Put(ctx, schema.Orders, rec).Return(rec, nil),
		f.queue.EXPECT().Enqueue(ctx, schema.Orders, models.OpUpsert, rec).Return(models.ChangeEntry{ID: 1}, nil),
		f.remote.EXPECT().Remove(ctx, schema.Orders, "A1").Return(nil),
		f.queue.EXPECT().Enqueue(ctx, schema.Orders, models.OpDelete, models.Record{"id": "A1"}).Return(models.ChangeEntry{ID: 2}, nil),
	)

	_, err = f.session.Put(ctx, schema.Orders, rec)
	require.NoError(t, err)
	require.NoError(t, f.session.Remove(ctx, schema.Orders, "A1"))
}

func TestSession_RemoteWritesToLocalOnlyCollectionsAreNotQueued(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	rec := models.Record{"name": "lathe"}
	stored := models.Record{"id": int64(1), "name": "lathe"}
	f.remote.EXPECT().PutMany(ctx, schema.Machines, []models.Record{rec}).Return([]models.Record{stored}, nil)
	f.remote.EXPECT().Clear(ctx, schema.Machines).Return(nil)

	got, err := f.session.PutMany(ctx, schema.Machines, []models.Record{rec})
	require.NoError(t, err)
	assert.Equal(t, []models.Record{stored}, got)
	require.NoError(t, f.session.Clear(ctx, schema.Machines))
}

func TestSession_LocalWritesAreNotQueuedTwice(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.local.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, false)
	require.NoError(t, err)

	rec := models.Record{"id": "A1"}
	f.local.EXPECT().Put(ctx, schema.Orders, rec).Return(rec, nil)
	// the queue mock has no expectations: any Enqueue fails the test

	_, err = f.session.Put(ctx, schema.Orders, rec)
	require.NoError(t, err)
}

func TestSession_QueueFailureAfterRemoteWrite(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	rec := models.Record{"id": "u-1"}
	f.remote.EXPECT().Put(ctx, schema.ProductionEntries, rec).Return(rec, nil)
	f.queue.EXPECT().Enqueue(ctx, schema.ProductionEntries, models.OpUpsert, rec).Return(models.ChangeEntry{}, errDiskFull)

	_, err = f.session.Put(ctx, schema.ProductionEntries, rec)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestSession_RemotePutManyQueuesInOneCall(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	records := []models.Record{{"id": "A1", "qty": 1}, {"id": "A2", "qty": 2}}
	gomock.InOrder(
		f.remote.EXPECT().PutMany(ctx, schema.Orders, records).Return(records, nil),
		f.queue.EXPECT().EnqueueMany(ctx, schema.Orders, models.OpUpsert, records).
			Return([]models.ChangeEntry{{ID: 1}, {ID: 2}}, nil),
	)

	got, err := f.session.PutMany(ctx, schema.Orders, records)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSession_RemotePutManyQueueFailure(t *testing.T) {
	f := newTestSession(t)
	ctx := context.Background()

	f.remote.EXPECT().Init(ctx).Return(nil)
	_, err := f.session.Resolve(ctx, true)
	require.NoError(t, err)

	records := []models.Record{{"id": "A1"}, {"id": "A2"}}
	f.remote.EXPECT().PutMany(ctx, schema.Orders, records).Return(records, nil)
	f.queue.EXPECT().EnqueueMany(ctx, schema.Orders, models.OpUpsert, records).Return(nil, errDiskFull)
	// a single EnqueueMany call: per-record Enqueue calls would fail on the mock

	_, err = f.session.PutMany(ctx, schema.Orders, records)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestSession_Close(t *testing.T) {
	f := newTestSession(t)

	f.remote.EXPECT().Close().Return(nil)
	f.local.EXPECT().Close().Return(errDiskFull)

	err := f.session.Close()
	assert.ErrorIs(t, err, errDiskFull)
}
