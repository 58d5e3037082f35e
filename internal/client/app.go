// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/shopfloor-sync/internal/adapter"
	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/provider"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/service"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/internal/workers"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// metaPreferRemote stores the provider last selected with [App.Use]. It is
// consulted only when the configuration leaves the preference unset.
const metaPreferRemote = "provider.prefer_remote"

// App is one client process: the local stores, the remote store client, the
// provider session on top of them and the sync services.
type App struct {
	cfg       *config.ClientConfig
	schema    *schema.Schema
	buildInfo models.AppBuildInfo

	storages *store.ClientStorages
	session  *provider.Session
	services *service.ClientServices
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp wires the client. Nothing is opened or contacted until [App.Open]
// or [App.Sync].
func NewApp(cfg *config.ClientConfig, s *schema.Schema, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages := store.NewClientStorages(cfg.Storage, s, logger)

	remote, err := adapter.NewRemoteStore(cfg.Adapter, cfg.App, s, logger)
	if err != nil {
		return nil, fmt.Errorf("create remote store: %w", err)
	}

	services := service.NewClientServices(storages, remote, s, logger)

	return &App{
		cfg:       cfg,
		schema:    s,
		buildInfo: buildInfo,
		storages:  storages,
		session:   provider.NewSession(remote, provider.NewLocal(storages.Local), s, storages.Queue, logger),
		services:  services,
		workers:   workers.NewWorkers(cfg.Workers, services),
		logger:    logger,
	}, nil
}

// Session returns the provider session serving record commands.
func (a *App) Session() *provider.Session {
	return a.session
}

// Schema returns the schema the client was built with.
func (a *App) Schema() *schema.Schema {
	return a.schema
}

// Open resolves the active provider. A non-nil warning means the preferred
// provider failed and the other one is serving.
func (a *App) Open(ctx context.Context) (*provider.Warning, error) {
	ctx = a.logger.WithContext(ctx)

	warning, err := a.session.Resolve(ctx, a.preferRemote(ctx))
	if err != nil {
		return nil, fmt.Errorf("open client: %w", err)
	}
	return warning, nil
}

func (a *App) preferRemote(ctx context.Context) bool {
	if a.cfg.App.PreferenceSet {
		return a.cfg.App.PreferRemote
	}

	stored, ok, err := a.storages.SyncMeta.Meta(ctx, metaPreferRemote)
	if err != nil {
		a.logger.Warn().Err(err).Msg("could not read stored provider preference")
		return a.cfg.App.PreferRemote
	}
	if !ok {
		return a.cfg.App.PreferRemote
	}

	prefer, err := strconv.ParseBool(stored)
	if err != nil {
		return a.cfg.App.PreferRemote
	}
	return prefer
}

// Use switches the session to the given provider and remembers the choice
// for later runs when the switch succeeded.
func (a *App) Use(ctx context.Context, kind models.ProviderKind) (provider.ToggleResult, error) {
	ctx = a.logger.WithContext(ctx)

	result, err := a.session.Toggle(ctx, kind == models.ProviderRemote)
	if err != nil {
		return result, err
	}
	if !result.Switched {
		return result, nil
	}

	if err = a.storages.SyncMeta.SetMeta(ctx, metaPreferRemote, strconv.FormatBool(kind == models.ProviderRemote)); err != nil {
		a.logger.Err(err).Str("func", "App.Use").Msg("failed to store provider preference")
		return result, fmt.Errorf("store provider preference: %w", err)
	}
	return result, nil
}

// Sync runs one sync cycle for each named collection, or for every
// sync-enabled collection when none is named. Failures are reported per
// collection in the result.
func (a *App) Sync(ctx context.Context, collections ...string) (models.SyncReport, error) {
	ctx = a.logger.WithContext(ctx)

	if err := a.storages.Local.Init(ctx); err != nil {
		return models.SyncReport{}, fmt.Errorf("init local store: %w", err)
	}

	if len(collections) == 0 {
		return a.services.SyncService.SyncAll(ctx), nil
	}

	report := models.SyncReport{Collections: make([]models.CollectionReport, 0, len(collections))}
	for _, name := range collections {
		report.Collections = append(report.Collections, a.services.SyncService.SyncCollection(ctx, name))
	}
	return report, nil
}

// Status collects the provider state, the queue depth and the watermark of
// every sync-enabled collection.
func (a *App) Status(ctx context.Context) (models.ClientStatus, error) {
	ctx = a.logger.WithContext(ctx)

	state := a.session.State()
	status := models.ClientStatus{
		DeviceID:      a.cfg.App.DeviceID,
		RemoteAddress: a.cfg.Adapter.HTTPAddress,
		Provider:      state,
		Build:         a.buildInfo,
	}
	if state.LastError != nil {
		status.ProviderError = state.LastError.Error()
	}

	pending, err := a.storages.Queue.Pending(ctx)
	if err != nil {
		return models.ClientStatus{}, fmt.Errorf("count pending changes: %w", err)
	}
	status.Pending = pending

	for _, name := range a.schema.SyncCollectionNames() {
		watermark, err := a.storages.SyncMeta.Watermark(ctx, name)
		if err != nil {
			return models.ClientStatus{}, fmt.Errorf("read watermark of %s: %w", name, err)
		}
		status.Watermarks = append(status.Watermarks, models.SyncMeta{Collection: name, Watermark: watermark})
	}

	return status, nil
}

// Watch runs the background workers until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	if a.cfg.Workers.SyncInterval <= 0 {
		return ErrSyncIntervalNotSet
	}

	ctx = a.logger.WithContext(ctx)
	if err := a.storages.Local.Init(ctx); err != nil {
		return fmt.Errorf("init local store: %w", err)
	}

	a.logger.Info().Dur("interval", a.cfg.Workers.SyncInterval).Msg("watching for changes")
	a.workers.Run(ctx)
	<-ctx.Done()
	a.workers.Stop()

	return nil
}

// BuildInfo returns the build metadata of the binary.
func (a *App) BuildInfo() models.AppBuildInfo {
	return a.buildInfo
}

// Close releases both providers and the local database.
func (a *App) Close() error {
	return a.session.Close()
}
