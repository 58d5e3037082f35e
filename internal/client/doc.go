// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the shop-floor client command line.
//
// [App] wires the local SQLite stores, the remote store client, the provider
// session and the sync services of one process. [NewRootCommand] exposes
// them as cobra subcommands: record access through the active provider,
// one-shot and periodic sync, provider switching and status.
package client
