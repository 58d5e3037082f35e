// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Operation is the kind of mutation recorded in the change queue.
type Operation string

const (
	// OpUpsert inserts or overwrites a record by primary key.
	OpUpsert Operation = "upsert"
	// OpDelete removes a record by primary key.
	OpDelete Operation = "delete"
)

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	return op == OpUpsert || op == OpDelete
}

// ChangeEntry is a queued local mutation awaiting push to the remote store.
//
// IDs are assigned by the queue, strictly increasing and never reused.
// For OpUpsert the payload is the full record; for OpDelete it only carries
// the primary key under the collection's key path.
type ChangeEntry struct {
	ID         int64     `json:"id"`
	Collection string    `json:"collection"`
	Operation  Operation `json:"operation"`
	Payload    Record    `json:"payload"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// PendingChanges is the number of queued entries for one collection.
type PendingChanges struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}
