// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// fakeRemote is an in-memory remote store speaking the sync and record API.
// Every batch bumps the revision that is returned as server_time.
type fakeRemote struct {
	mu       sync.Mutex
	schema   *schema.Schema
	records  map[string]map[string]models.Record
	revision int
	batches  []models.BatchRequest
}

func newFakeRemote(t *testing.T) (*fakeRemote, *httptest.Server) {
	t.Helper()

	f := &fakeRemote{schema: schema.Default(), records: make(map[string]map[string]models.Record)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, models.PingResponse{Status: "ok", ServerTime: time.Now().UTC().Format(time.RFC3339Nano)})
	})
	mux.HandleFunc("POST /api/sync/{collection}/batch", f.applyBatch)
	mux.HandleFunc("GET /api/sync/{collection}/changes", f.changes)
	mux.HandleFunc("GET /api/collections/{collection}/records", f.list)
	mux.HandleFunc("PUT /api/collections/{collection}/records", f.put)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRemote) seed(collection string, records ...models.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		f.storeLocked(collection, rec)
	}
	f.revision++
}

func (f *fakeRemote) storeLocked(collection string, rec models.Record) {
	c, _ := f.schema.Collection(collection)
	key, _ := c.KeyOf(rec)
	encoded, _ := schema.EncodeValue(key)
	if f.records[collection] == nil {
		f.records[collection] = make(map[string]models.Record)
	}
	f.records[collection][encoded] = rec
}

func (f *fakeRemote) get(collection string, key any) (models.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	encoded, _ := schema.EncodeValue(key)
	rec, ok := f.records[collection][encoded]
	return rec, ok
}

func (f *fakeRemote) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func (f *fakeRemote) applyBatch(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	var batch models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, batch)
	for _, op := range batch.Operations {
		switch op.Op {
		case models.OpUpsert:
			f.storeLocked(collection, op.Record)
		case models.OpDelete:
			encoded, _ := schema.EncodeValue(op.Key)
			delete(f.records[collection], encoded)
		}
	}
	f.revision++

	writeTestJSON(w, http.StatusOK, models.BatchResponse{Applied: batch.Len(), ServerTime: strconv.Itoa(f.revision)})
}

func (f *fakeRemote) changes(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	f.mu.Lock()
	defer f.mu.Unlock()

	changes := make([]models.Record, 0, len(f.records[collection]))
	for _, rec := range f.records[collection] {
		changes = append(changes, rec)
	}
	writeTestJSON(w, http.StatusOK, models.ChangesResponse{Changes: changes, ServerTime: strconv.Itoa(f.revision)})
}

func (f *fakeRemote) list(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	f.mu.Lock()
	defer f.mu.Unlock()

	records := make([]models.Record, 0, len(f.records[collection]))
	for _, rec := range f.records[collection] {
		records = append(records, rec)
	}
	writeTestJSON(w, http.StatusOK, records)
}

func (f *fakeRemote) put(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.storeLocked(collection, rec)
	f.revision++
	f.mu.Unlock()

	writeTestJSON(w, http.StatusOK, rec)
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// deadAddress returns the URL of a server that is no longer listening.
func deadAddress(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return addr
}
