// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP API of the remote store.
//
// Devices push change batches and pull change feeds through /api/sync, and
// the remote provider reads and writes single records through
// /api/collections. Every route except ping and version requires a device
// bearer token. Recovery, trace ids, access logs and gzip are applied to all
// requests before they reach the record service.
package http
