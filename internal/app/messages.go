// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages shared by the remote store
// handlers and middleware.
//
// Client errors answer with the error text itself. Server-side failures
// answer with one of these fixed messages so the cause stays in the log.
package app

const (
	// MsgInternalServerError is returned for any storage or unexpected
	// failure.
	MsgInternalServerError = "internal server error"

	// MsgStoreNotReady is returned by GET /api/ping when the database does
	// not answer.
	MsgStoreNotReady = "remote store is not ready"
)
