// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BatchOperation is one entry of an ordered batch. Key is always set;
// Record is set only for upserts.
type BatchOperation struct {
	Op     Operation `json:"op"`
	Key    any       `json:"key"`
	Record Record    `json:"record,omitempty"`
}

// BatchRequest is the body of the remote batch-apply endpoint.
//
// Upserts and Deletes are the partitioned view of the drained queue, each in
// enqueue order. Operations carries the same entries as a single ordered list;
// when it is present the remote applies it in order, so an upsert followed by
// a delete of the same key leaves the key absent.
type BatchRequest struct {
	Upserts    []Record         `json:"upserts"`
	Deletes    []any            `json:"deletes"`
	Operations []BatchOperation `json:"operations,omitempty"`
}

// Len returns the number of mutations carried by the request.
func (b BatchRequest) Len() int {
	if len(b.Operations) > 0 {
		return len(b.Operations)
	}
	return len(b.Upserts) + len(b.Deletes)
}

// BatchResponse is returned by the remote after a batch was applied as a unit.
type BatchResponse struct {
	Applied    int    `json:"applied"`
	ServerTime string `json:"server_time"`
}

// ChangesResponse is returned by the remote changes endpoint.
//
// ServerTime is an opaque watermark usable as a future "since" value: it
// captures exactly the changes strictly after this response's snapshot.
// Deleted lists keys removed remotely after "since".
type ChangesResponse struct {
	Changes    []Record `json:"changes"`
	Deleted    []any    `json:"deleted,omitempty"`
	ServerTime string   `json:"server_time"`
}

// SyncMeta is the last-synchronised watermark of a collection.
// A nil Watermark means the collection was never pulled.
type SyncMeta struct {
	Collection string  `json:"collection"`
	Watermark  *string `json:"watermark,omitempty"`
}

// PingResponse is returned by the remote health endpoint.
type PingResponse struct {
	Status     string `json:"status"`
	ServerTime string `json:"server_time"`
}
