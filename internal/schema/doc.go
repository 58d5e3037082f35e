// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema declares the collections of the shop-floor store: their key
// layout, secondary indexes, sync flag and the schema version that introduced
// them.
//
// A [Schema] is append-only across versions. Collections and indexes carry a
// Since version; opening a store created by an older version adds whatever was
// introduced later and never drops or rewrites existing data.
//
// Keys and index values are compared by their canonical JSON encoding
// ([EncodeValue]), so 5 and "5" are different keys.
package schema
