// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/utils"
	"github.com/MKhiriev/shopfloor-sync/models"
)

const (
	// deviceTokenTTL is the lifetime of the tokens the client signs for itself.
	deviceTokenTTL = 15 * time.Minute
	// tokenRefreshMargin renews a token this long before it expires.
	tokenRefreshMargin = time.Minute

	initRetryBase = 200 * time.Millisecond
	initRetryMax  = 2 * time.Second
)

// Remote API paths.
const (
	pathPing        = "/api/ping"
	pathSyncBatch   = "/api/sync/{collection}/batch"
	pathSyncChanges = "/api/sync/{collection}/changes"
	pathRecords     = "/api/collections/{collection}/records"
	pathRecordBatch = "/api/collections/{collection}/records/batch"
	pathRecord      = "/api/collections/{collection}/record"
	pathIndex       = "/api/collections/{collection}/index/{index}"
)

// RemoteStore is the HTTP client of the remote store. It implements the
// remote data provider and [SyncClient].
type RemoteStore struct {
	client *utils.HTTPClient
	schema *schema.Schema

	deviceID     string
	signKey      string
	issuer       string
	initAttempts int

	mu    sync.Mutex
	token models.Token

	logger *logger.Logger
}

// NewRemoteStore constructs a [RemoteStore] for the server at
// adapterCfg.HTTPAddress. No request is made until Init.
func NewRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, s *schema.Schema, logger *logger.Logger) (*RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	r := &RemoteStore{
		client:       utils.NewHTTPClient(),
		schema:       s,
		deviceID:     appCfg.DeviceID,
		signKey:      appCfg.TokenSignKey,
		issuer:       appCfg.TokenIssuer,
		initAttempts: max(adapterCfg.InitAttempts, 1),
		logger:       logger,
	}

	r.client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		OnBeforeRequest(r.authorize)

	return r, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// authorize attaches a device bearer token to every request, signing a new
// one when the current token is about to expire.
func (r *RemoteStore) authorize(_ *resty.Client, req *resty.Request) error {
	token, err := r.bearer()
	if err != nil {
		return err
	}
	req.SetAuthToken(token)
	return nil
}

func (r *RemoteStore) bearer() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token.SignedString != "" && time.Until(r.token.ExpiresAt) > tokenRefreshMargin {
		return r.token.SignedString, nil
	}

	token, err := utils.GenerateJWTToken(r.issuer, r.deviceID, deviceTokenTTL, r.signKey)
	if err != nil {
		return "", fmt.Errorf("sign device token: %w", err)
	}
	r.token = token
	return token.SignedString, nil
}

// Kind implements the provider contract.
func (r *RemoteStore) Kind() models.ProviderKind {
	return models.ProviderRemote
}

// Init checks that the remote store is reachable, retrying with exponential
// backoff up to the configured number of attempts. An unauthorised device is
// not retried.
func (r *RemoteStore) Init(ctx context.Context) error {
	backoff := retry.NewExponential(initRetryBase)
	backoff = retry.WithCappedDuration(initRetryMax, backoff)
	backoff = retry.WithMaxRetries(uint64(r.initAttempts-1), backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		_, err := r.Ping(ctx)
		if err == nil {
			return nil
		}
		r.logger.Debug().Err(err).Int("attempt", attempt).Msg("remote store ping failed")
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "RemoteStore.Init").
			Int("attempts", attempt).
			Msg("remote store is unavailable")
		return err
	}
	return nil
}

// Ping implements [SyncClient].
func (r *RemoteStore) Ping(ctx context.Context) (models.PingResponse, error) {
	var result models.PingResponse

	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(pathPing)
	if err != nil {
		return models.PingResponse{}, transportError("ping", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PingResponse{}, err
	}

	return result, nil
}

// ApplyBatch implements [SyncClient]. It POSTs the batch to
// POST /api/sync/{collection}/batch.
func (r *RemoteStore) ApplyBatch(ctx context.Context, collection string, batch models.BatchRequest) (models.BatchResponse, error) {
	var result models.BatchResponse

	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetHeader("Content-Type", "application/json").
		SetBody(batch).
		SetResult(&result).
		Post(pathSyncBatch)
	if err != nil {
		return models.BatchResponse{}, transportError("apply batch", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchResponse{}, err
	}

	return result, nil
}

// Changes implements [SyncClient]. It GETs
// GET /api/sync/{collection}/changes, adding ?since= only when a watermark
// is known.
func (r *RemoteStore) Changes(ctx context.Context, collection string, since *string) (models.ChangesResponse, error) {
	var result models.ChangesResponse

	req := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetResult(&result)
	if since != nil {
		req.SetQueryParam("since", *since)
	}

	resp, err := req.Get(pathSyncChanges)
	if err != nil {
		return models.ChangesResponse{}, transportError("changes", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangesResponse{}, err
	}

	if result.ServerTime == "" {
		return models.ChangesResponse{}, fmt.Errorf("%w: changes response without server_time", models.ErrNetwork)
	}
	if result.Changes == nil {
		result.Changes = make([]models.Record, 0)
	}
	return result, nil
}

// Put stores one record through PUT /api/collections/{collection}/records and
// returns it as stored, with a key assigned by the server when it had none.
func (r *RemoteStore) Put(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	if _, err := r.schema.Collection(collection); err != nil {
		return nil, err
	}

	var stored models.Record
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&stored).
		Put(pathRecords)
	if err != nil {
		return nil, transportError("put", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return stored, nil
}

// PutMany stores records through POST /api/collections/{collection}/records/batch
// in one remote transaction.
func (r *RemoteStore) PutMany(ctx context.Context, collection string, records []models.Record) ([]models.Record, error) {
	if _, err := r.schema.Collection(collection); err != nil {
		return nil, err
	}

	var stored []models.Record
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetHeader("Content-Type", "application/json").
		SetBody(records).
		SetResult(&stored).
		Post(pathRecordBatch)
	if err != nil {
		return nil, transportError("put many", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return stored, nil
}

// GetByID fetches one record, or [models.ErrNotFound].
func (r *RemoteStore) GetByID(ctx context.Context, collection string, key any) (models.Record, error) {
	encodedKey, err := r.encodeKey(collection, key)
	if err != nil {
		return nil, err
	}

	var rec models.Record
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetQueryParam("key", encodedKey).
		SetResult(&rec).
		Get(pathRecord)
	if err != nil {
		return nil, transportError("get", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return rec, nil
}

// GetAll lists the records of a collection.
func (r *RemoteStore) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	if _, err := r.schema.Collection(collection); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0)
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetResult(&records).
		Get(pathRecords)
	if err != nil {
		return nil, transportError("get all", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByIndex lists the records whose indexed field equals value.
func (r *RemoteStore) GetByIndex(ctx context.Context, collection, index string, value any) ([]models.Record, error) {
	if _, _, err := r.schema.Index(collection, index); err != nil {
		return nil, err
	}
	encodedValue, err := schema.EncodeValue(value)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0)
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection, "index": index}).
		SetQueryParam("value", encodedValue).
		SetResult(&records).
		Get(pathIndex)
	if err != nil {
		return nil, transportError("get by index", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return records, nil
}

// Remove deletes one record. Removing an absent key succeeds.
func (r *RemoteStore) Remove(ctx context.Context, collection string, key any) error {
	encodedKey, err := r.encodeKey(collection, key)
	if err != nil {
		return err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetQueryParam("key", encodedKey).
		Delete(pathRecord)
	if err != nil {
		return transportError("remove", err)
	}
	return mapHTTPError(resp)
}

// Clear deletes every record of a collection.
func (r *RemoteStore) Clear(ctx context.Context, collection string) error {
	if _, err := r.schema.Collection(collection); err != nil {
		return err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		Delete(pathRecords)
	if err != nil {
		return transportError("clear", err)
	}
	return mapHTTPError(resp)
}

// Close releases idle connections.
func (r *RemoteStore) Close() error {
	r.client.GetClient().CloseIdleConnections()
	return nil
}

func (r *RemoteStore) encodeKey(collection string, key any) (string, error) {
	if _, err := r.schema.Collection(collection); err != nil {
		return "", err
	}
	if key == nil {
		return "", fmt.Errorf("%w: empty key", models.ErrValidation)
	}
	return schema.EncodeValue(key)
}
