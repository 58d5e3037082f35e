// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/shopfloor-sync/internal/app"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/utils"
	"github.com/MKhiriev/shopfloor-sync/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.RecordService.Ping(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.ping").Msg("remote store is not ready")
		http.Error(w, app.MsgStoreNotReady, http.StatusServiceUnavailable)
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) applyBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	var batch models.BatchRequest
	if err := decodeBody(w, r, &batch); err != nil {
		log.Err(err).Str("func", "*Handler.applyBatch").Msg("invalid batch body")
		writeError(w, err)
		return
	}

	resp, err := h.services.RecordService.ApplyBatch(ctx, collection, batch)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.applyBatch").
			Str("collection", collection).
			Int("mutations", batch.Len()).
			Msg("batch was not applied")
		writeError(w, err)
		return
	}

	log.Info().Str("collection", collection).Int("applied", resp.Applied).Str("server_time", resp.ServerTime).Msg("batch applied")
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")
	since := r.URL.Query().Get("since")

	resp, err := h.services.RecordService.Changes(ctx, collection, since)
	if err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.getChanges").
			Str("collection", collection).
			Str("since", since).
			Msg("error getting changes")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	records, err := h.services.RecordService.List(r.Context(), collection)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listRecords").Str("collection", collection).Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, nonNil(records), http.StatusOK)
}

func (h *Handler) putRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	var record models.Record
	if err := decodeBody(w, r, &record); err != nil {
		log.Err(err).Str("func", "*Handler.putRecord").Msg("invalid record body")
		writeError(w, err)
		return
	}

	stored, err := h.services.RecordService.Put(r.Context(), collection, record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.putRecord").Str("collection", collection).Msg("record was not stored")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, stored[0], http.StatusOK)
}

func (h *Handler) putRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	var records []models.Record
	if err := decodeBody(w, r, &records); err != nil {
		log.Err(err).Str("func", "*Handler.putRecords").Msg("invalid records body")
		writeError(w, err)
		return
	}

	stored, err := h.services.RecordService.Put(r.Context(), collection, records...)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.putRecords").
			Str("collection", collection).
			Int("records", len(records)).
			Msg("records were not stored")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) clearRecords(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	if err := h.services.RecordService.Clear(r.Context(), collection); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.clearRecords").Str("collection", collection).Send()
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	key, err := queryValue(r, "key")
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Send()
		writeError(w, err)
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), collection, key)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Str("collection", collection).Any("key", key).Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	key, err := queryValue(r, "key")
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteRecord").Send()
		writeError(w, err)
		return
	}

	if err = h.services.RecordService.Delete(r.Context(), collection, key); err != nil {
		log.Err(err).Str("func", "*Handler.deleteRecord").Str("collection", collection).Any("key", key).Send()
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findByIndex(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")
	index := chi.URLParam(r, "index")

	value, err := queryValue(r, "value")
	if err != nil {
		log.Err(err).Str("func", "*Handler.findByIndex").Send()
		writeError(w, err)
		return
	}

	records, err := h.services.RecordService.FindByIndex(r.Context(), collection, index, value)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.findByIndex").
			Str("collection", collection).
			Str("index", index).
			Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, nonNil(records), http.StatusOK)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// queryValue decodes a canonical JSON query parameter such as a record key.
func queryValue(r *http.Request, name string) (any, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingQueryParam, name)
	}

	v, err := schema.DecodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrValidation, name, err)
	}
	return v, nil
}

func nonNil(records []models.Record) []models.Record {
	if records == nil {
		return []models.Record{}
	}
	return records
}
