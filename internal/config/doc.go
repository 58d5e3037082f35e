// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates the configuration of the
// shop-floor server and client.
//
// Sources are read in this order and merged with mergo; the first source
// that sets a field wins:
//  1. Environment variables (an optional .env file is preloaded first and
//     never overrides variables that are already set)
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] returns the server configuration, [GetClientConfig]
// the client view of the same sources.
package config
