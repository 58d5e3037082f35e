// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// Warning reports that the preferred provider could not be initialised and
// the session fell back to the other one. It is not an error: data access
// works, only against a different store.
type Warning struct {
	Requested models.ProviderKind
	Active    models.ProviderKind
	Cause     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s provider unavailable, using %s: %v", w.Requested, w.Active, w.Cause)
}

// ToggleResult is the outcome of an explicit provider switch. When the
// requested provider failed, Switched is false, Active is the provider the
// session reverted to and Err is the initialisation failure.
type ToggleResult struct {
	Switched bool
	Active   models.ProviderKind
	Err      error
}

// Session presents the active provider to callers and owns the provider
// state of the process.
type Session struct {
	providers map[models.ProviderKind]Provider
	schema    *schema.Schema
	queue     store.ChangeQueue

	mu     sync.RWMutex
	active Provider
	state  models.ProviderState

	logger *logger.Logger
}

// NewSession builds a session over the remote and local providers. Writes
// made through the remote provider to sync-enabled collections are also
// recorded in queue.
func NewSession(remote, local Provider, s *schema.Schema, queue store.ChangeQueue, logger *logger.Logger) *Session {
	return &Session{
		providers: map[models.ProviderKind]Provider{
			models.ProviderRemote: remote,
			models.ProviderLocal:  local,
		},
		schema: s,
		queue:  queue,
		logger: logger,
	}
}

// Resolve initialises the preferred provider and makes it active. When that
// fails the other provider is initialised instead and a [Warning] is
// returned. Only when both fail does Resolve return an error, wrapping
// [models.ErrProviderUnavailable] and both causes.
func (s *Session) Resolve(ctx context.Context, preferRemote bool) (*Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	preferred := models.KindFor(preferRemote)

	preferredErr := s.initLocked(ctx, preferred)
	if preferredErr == nil {
		s.activateLocked(preferred, nil)
		return nil, nil
	}

	fallback := preferred.Other()
	fallbackErr := s.initLocked(ctx, fallback)
	if fallbackErr != nil {
		s.active = nil
		s.state = models.ProviderState{LastError: fallbackErr}

		err := fmt.Errorf("%w: %s: %w; %s: %w",
			models.ErrProviderUnavailable, preferred, preferredErr, fallback, fallbackErr)
		s.logger.Err(err).Str("func", "Session.Resolve").Msg("no provider could be initialised")
		return nil, err
	}

	s.activateLocked(fallback, preferredErr)
	s.logger.Warn().
		Err(preferredErr).
		Str("requested", string(preferred)).
		Str("active", string(fallback)).
		Msg("provider fallback")

	return &Warning{Requested: preferred, Active: fallback, Cause: preferredErr}, nil
}

// Toggle switches to the requested provider. If it cannot be initialised the
// session stays on, and re-initialises, the previous provider; the failure is
// reported in the result. An error is returned only when no provider is left
// active.
func (s *Session) Toggle(ctx context.Context, preferRemote bool) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := models.KindFor(preferRemote)

	err := s.initLocked(ctx, requested)
	if err == nil {
		s.activateLocked(requested, nil)
		return ToggleResult{Switched: true, Active: requested}, nil
	}

	s.logger.Warn().
		Err(err).
		Str("requested", string(requested)).
		Msg("provider toggle failed")

	if s.active == nil || s.active.Kind() == requested {
		s.active = nil
		s.state = models.ProviderState{LastError: err}
		return ToggleResult{Err: err}, fmt.Errorf("%w: %s: %w", models.ErrProviderUnavailable, requested, err)
	}

	previous := s.active.Kind()
	if revertErr := s.initLocked(ctx, previous); revertErr != nil {
		s.active = nil
		s.state = models.ProviderState{LastError: revertErr}
		return ToggleResult{Err: err}, fmt.Errorf("%w: %s: %w; %s: %w",
			models.ErrProviderUnavailable, requested, err, previous, revertErr)
	}

	s.state.LastError = err
	if requested == models.ProviderRemote {
		s.state.Connected = false
	}
	return ToggleResult{Switched: false, Active: previous, Err: err}, nil
}

func (s *Session) initLocked(ctx context.Context, kind models.ProviderKind) error {
	p, ok := s.providers[kind]
	if !ok || p == nil {
		return fmt.Errorf("%s provider is not configured", kind)
	}
	return p.Init(ctx)
}

func (s *Session) activateLocked(kind models.ProviderKind, lastErr error) {
	s.active = s.providers[kind]
	s.state = models.ProviderState{
		Active:    kind,
		Connected: kind == models.ProviderRemote,
		LastError: lastErr,
	}
}

// State returns a copy of the provider state.
func (s *Session) State() models.ProviderState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Active returns the active provider or [ErrNoActiveProvider].
func (s *Session) Active() (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return nil, ErrNoActiveProvider
	}
	return s.active, nil
}

// Close closes both providers.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	var errs []error
	for _, kind := range []models.ProviderKind{models.ProviderRemote, models.ProviderLocal} {
		if p := s.providers[kind]; p != nil {
			if err := p.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s provider: %w", kind, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Session) Put(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	p, err := s.Active()
	if err != nil {
		return nil, err
	}

	stored, err := p.Put(ctx, collection, record)
	if err != nil {
		return nil, err
	}
	if err = s.track(ctx, p, collection, models.OpUpsert, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Session) PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error) {
	p, err := s.Active()
	if err != nil {
		return nil, err
	}

	stored, err := p.PutMany(ctx, collection, records)
	if err != nil {
		return nil, err
	}
	if err = s.track(ctx, p, collection, models.OpUpsert, stored...); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Session) GetByID(ctx context.Context, collection string, key any) (models.Record, error) {
	p, err := s.Active()
	if err != nil {
		return nil, err
	}
	return p.GetByID(ctx, collection, key)
}

func (s *Session) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	p, err := s.Active()
	if err != nil {
		return nil, err
	}
	return p.GetAll(ctx, collection)
}

func (s *Session) GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	p, err := s.Active()
	if err != nil {
		return nil, err
	}
	return p.GetByIndex(ctx, collection, index, value)
}

func (s *Session) Remove(ctx context.Context, collection string, key any) error {
	p, err := s.Active()
	if err != nil {
		return err
	}

	if err = p.Remove(ctx, collection, key); err != nil {
		return err
	}

	c, err := s.schema.Collection(collection)
	if err != nil {
		return err
	}
	return s.track(ctx, p, collection, models.OpDelete, c.KeyRecord(key))
}

func (s *Session) Clear(ctx context.Context, collection string) error {
	p, err := s.Active()
	if err != nil {
		return err
	}
	return p.Clear(ctx, collection)
}

// track queues a write made through the remote provider to a sync-enabled
// collection. The local provider queues inside its own transaction.
func (s *Session) track(ctx context.Context, p Provider, collection string, op models.Operation, payloads ...models.Record) error {
	if p.Kind() != models.ProviderRemote || len(payloads) == 0 {
		return nil
	}

	c, err := s.schema.Collection(collection)
	if err != nil || !c.SyncEnabled {
		return err
	}

	if len(payloads) == 1 {
		_, err = s.queue.Enqueue(ctx, collection, op, payloads[0])
	} else {
		_, err = s.queue.EnqueueMany(ctx, collection, op, payloads)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Session.track").
			Str("collection", collection).
			Str("operation", string(op)).
			Int("count", len(payloads)).
			Msg("remote write succeeded but could not be queued")
		return fmt.Errorf("queue %s of %s: %w", op, collection, err)
	}
	return nil
}
