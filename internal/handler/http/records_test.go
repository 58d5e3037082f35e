// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/shopfloor-sync/internal/app"
	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/mock"
	"github.com/MKhiriev/shopfloor-sync/internal/service"
	"github.com/MKhiriev/shopfloor-sync/internal/store"
	"github.com/MKhiriev/shopfloor-sync/models"
)

type testServer struct {
	router  http.Handler
	records *mock.MockRecordService
	appInfo *mock.MockAppInfoService
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		records: mock.NewMockRecordService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		token:   signedToken(t, testIssuer, testSignKey, time.Minute),
	}
	h := NewHandler(
		&service.Services{RecordService: ts.records, AppInfoService: ts.appInfo},
		config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer},
		logger.Nop(),
	)
	ts.router = h.Init()
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	ts := newTestServer(t)

	ts.records.EXPECT().Ping(gomock.Any()).Return(models.PingResponse{Status: "ok", ServerTime: "2026-10-17T08:00:00Z"}, nil)
	ts.appInfo.EXPECT().BuildInfo(gomock.Any()).Return(models.AppBuildInfo{Version: "1.4.0", Date: "N/A", Commit: "abc"})

	for _, path := range []string{"/api/ping", "/api/version"} {
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRoutes_PingUnavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.records.EXPECT().Ping(gomock.Any()).Return(models.PingResponse{}, store.ErrExecutingQuery)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgStoreNotReady)
}

func TestRoutes_Version(t *testing.T) {
	ts := newTestServer(t)
	want := models.AppBuildInfo{Version: "1.4.0", Date: "2026-10-01", Commit: "abc"}
	ts.appInfo.EXPECT().BuildInfo(gomock.Any()).Return(want)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, decodeJSON[models.AppBuildInfo](t, rec))
}

func TestRoutes_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/api/sync/orders/changes",
		"/api/collections/orders/records",
		"/api/collections/orders/record?key=%22A%22",
	} {
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestApplyBatch(t *testing.T) {
	ts := newTestServer(t)

	batch := models.BatchRequest{
		Upserts: []models.Record{{"id": "SO-1", "qty": int64(3)}},
		Deletes: []any{"SO-2"},
		Operations: []models.BatchOperation{
			{Op: models.OpUpsert, Key: "SO-1", Record: models.Record{"id": "SO-1", "qty": int64(3)}},
			{Op: models.OpDelete, Key: "SO-2"},
		},
	}
	ts.records.EXPECT().ApplyBatch(gomock.Any(), "orders", batch).Return(models.BatchResponse{Applied: 2, ServerTime: "11"}, nil)

	rec := ts.do(t, http.MethodPost, "/api/sync/orders/batch", batch)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BatchResponse{Applied: 2, ServerTime: "11"}, decodeJSON[models.BatchResponse](t, rec))
}

func TestApplyBatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown collection", err: models.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: store.ErrCommitingTransaction, wantStatus: http.StatusInternalServerError},
		{name: "unmapped", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.records.EXPECT().ApplyBatch(gomock.Any(), "orders", gomock.Any()).Return(models.BatchResponse{}, tt.err)

			rec := ts.do(t, http.MethodPost, "/api/sync/orders/batch", models.BatchRequest{})
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, app.MsgInternalServerError+"\n", rec.Body.String())
			}
		})
	}
}

func TestApplyBatch_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/orders/batch", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChanges(t *testing.T) {
	tests := []struct {
		name  string
		query string
		since string
	}{
		{name: "full", query: "", since: ""},
		{name: "since watermark", query: "?since=42", since: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			want := models.ChangesResponse{
				Changes:    []models.Record{{"id": "SO-1", "qty": int64(3)}},
				Deleted:    []any{"SO-2"},
				ServerTime: "43",
			}
			ts.records.EXPECT().Changes(gomock.Any(), "orders", tt.since).Return(want, nil)

			rec := ts.do(t, http.MethodGet, "/api/sync/orders/changes"+tt.query, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, want, decodeJSON[models.ChangesResponse](t, rec))
		})
	}
}

func TestGetChanges_InvalidWatermark(t *testing.T) {
	ts := newTestServer(t)
	ts.records.EXPECT().Changes(gomock.Any(), "orders", "yesterday").Return(models.ChangesResponse{}, service.ErrInvalidWatermark)

	rec := ts.do(t, http.MethodGet, "/api/sync/orders/changes?since=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordEndpoints(t *testing.T) {
	ts := newTestServer(t)
	order := models.Record{"id": "SO-1", "customer": "ACME"}
	entry := models.Record{"machine": "M-7"}
	stored := models.Record{"id": "7f7c", "machine": "M-7"}

	ts.records.EXPECT().Put(gomock.Any(), "production-entries", entry).Return([]models.Record{stored}, nil)
	ts.records.EXPECT().Put(gomock.Any(), "orders", order, order).Return([]models.Record{order, order}, nil)
	ts.records.EXPECT().List(gomock.Any(), "orders").Return(nil, nil)
	ts.records.EXPECT().Get(gomock.Any(), "orders", "SO-1").Return(order, nil)
	ts.records.EXPECT().Get(gomock.Any(), "machines", int64(5)).Return(nil, models.ErrNotFound)
	ts.records.EXPECT().FindByIndex(gomock.Any(), "orders", "customer", "ACME").Return([]models.Record{order}, nil)
	ts.records.EXPECT().Delete(gomock.Any(), "orders", "SO-1").Return(nil)
	ts.records.EXPECT().Clear(gomock.Any(), "orders").Return(nil)

	rec := ts.do(t, http.MethodPut, "/api/collections/production-entries/records", entry)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored, decodeJSON[models.Record](t, rec))

	rec = ts.do(t, http.MethodPost, "/api/collections/orders/records/batch", []models.Record{order, order})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]models.Record](t, rec), 2)

	rec = ts.do(t, http.MethodGet, "/api/collections/orders/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/collections/orders/record?key="+url.QueryEscape(`"SO-1"`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order, decodeJSON[models.Record](t, rec))

	rec = ts.do(t, http.MethodGet, "/api/collections/machines/record?key=5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/collections/orders/index/customer?value="+url.QueryEscape(`"ACME"`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]models.Record](t, rec), 1)

	rec = ts.do(t, http.MethodDelete, "/api/collections/orders/record?key="+url.QueryEscape(`"SO-1"`), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/collections/orders/records", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecordEndpoints_BadQuery(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/api/collections/orders/record",
		"/api/collections/orders/record?key=" + url.QueryEscape(`{"unterminated`),
		"/api/collections/orders/index/customer",
	} {
		rec := ts.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrValidation, http.StatusBadRequest},
		{errors.Join(store.ErrExecutingStatement, models.ErrValidation), http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{ErrInvalidToken, http.StatusUnauthorized},
		{store.ErrScanningRows, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}
