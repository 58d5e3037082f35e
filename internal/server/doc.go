// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the remote store's HTTP server.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown that lets in-flight batches finish.
package server
