// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/shopfloor-sync/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "batch response",
			data:       models.BatchResponse{Applied: 2, ServerTime: "7"},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"applied":2,"server_time":"7"}`,
		},
		{
			name:       "created record",
			data:       models.Record{"id": "ord-1", "quantity": 4},
			status:     http.StatusCreated,
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"ord-1","quantity":4}`,
		},
		{
			name:       "empty change feed",
			data:       models.ChangesResponse{Changes: []models.Record{}, ServerTime: "0"},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"changes":[],"server_time":"0"}`,
		},
		{
			name:       "nil",
			data:       nil,
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   "null",
		},
		{
			name:       "unencodable record",
			data:       models.Record{"callback": func() {}},
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, n)
				assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
