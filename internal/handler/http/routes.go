// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
		r.Get("/api/version", h.getServerVersion)
	})

	// device routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/sync/{collection}", func(r chi.Router) {
			r.Post("/batch", h.applyBatch)
			r.Get("/changes", h.getChanges)
		})

		r.Route("/api/collections/{collection}", func(r chi.Router) {
			r.Get("/records", h.listRecords)
			r.Put("/records", h.putRecord)
			r.Delete("/records", h.clearRecords)
			r.Post("/records/batch", h.putRecords)

			r.Get("/record", h.getRecord)
			r.Delete("/record", h.deleteRecord)

			r.Get("/index/{index}", h.findByIndex)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
