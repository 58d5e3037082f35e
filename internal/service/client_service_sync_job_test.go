// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// spySyncService counts SyncAll calls.
type spySyncService struct {
	calls  atomic.Int64
	failed bool
}

func (s *spySyncService) SyncAll(context.Context) models.SyncReport {
	s.calls.Add(1)
	if s.failed {
		return models.SyncReport{Collections: []models.CollectionReport{
			{Collection: "orders", Err: models.ErrNetwork, Error: models.ErrNetwork.Error()},
		}}
	}
	return models.SyncReport{}
}

func (s *spySyncService) SyncCollection(_ context.Context, collection string) models.CollectionReport {
	return models.CollectionReport{Collection: collection}
}

func (s *spySyncService) Push(context.Context, string) (int, error) { return 0, nil }

func (s *spySyncService) Pull(context.Context, string) (models.PullResult, error) {
	return models.PullResult{}, nil
}

// ── NewSyncJob ───────────────────────────────────────────────────────────────

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())
	require.NotNil(t, job)

	var _ SyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_CallsSyncAll(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	// 10ms interval gives about 5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "SyncAll called %d times", got)
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_NonPositiveInterval_Disabled(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spySyncService{}
		job := NewSyncJob(spy, logger.Nop()).(*syncJob)

		job.Start(context.Background(), interval)
		time.Sleep(20 * time.Millisecond)

		job.mu.Lock()
		running := job.cancel != nil
		job.mu.Unlock()
		job.Stop()

		assert.False(t, running, "interval %s", interval)
		assert.Equal(t, int64(0), spy.calls.Load())
	}
}

func TestSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// Start calls Stop internally
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}

func TestSyncJob_FailedCollections_DoNotStopJob(t *testing.T) {
	spy := &spySyncService{failed: true}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
