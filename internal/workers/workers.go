// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the client workers. The periodic sync worker is always
// present; a zero sync interval leaves it idle.
func NewWorkers(cfg config.ClientWorkers, services *service.ClientServices) *Workers {
	return &Workers{workers: []Worker{
		NewSyncWorker(services.SyncJob, cfg.SyncInterval),
	}}
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order and waits for each.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// SyncWorker runs the periodic sync job.
type SyncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

func NewSyncWorker(job service.SyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{job: job, interval: interval}
}

func (s *SyncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *SyncWorker) Stop() {
	s.job.Stop()
}
