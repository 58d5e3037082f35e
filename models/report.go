// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CollectionReport describes the outcome of one sync cycle for a collection.
// Err is set when push or pull failed; the queue and watermark are then left
// untouched and the cycle can be retried.
type CollectionReport struct {
	Collection string `json:"collection"`
	Pushed     int    `json:"pushed"`
	Pulled     int    `json:"pulled"`
	Removed    int    `json:"removed"`
	Watermark  string `json:"watermark,omitempty"`
	Error      string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Failed reports whether the cycle ended with an error.
func (r CollectionReport) Failed() bool {
	return r.Err != nil
}

// SyncReport aggregates the per-collection outcomes of a sync run in the
// order the collections were processed.
type SyncReport struct {
	Collections []CollectionReport `json:"collections"`
}

// Failed returns the reports of collections whose cycle failed.
func (r SyncReport) Failed() []CollectionReport {
	var failed []CollectionReport
	for _, c := range r.Collections {
		if c.Failed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Get returns the report of the named collection.
func (r SyncReport) Get(collection string) (CollectionReport, bool) {
	for _, c := range r.Collections {
		if c.Collection == collection {
			return c, true
		}
	}
	return CollectionReport{}, false
}

// PullResult counts what one pull changed locally. Watermark is the
// server_time stored after the pull.
type PullResult struct {
	Upserted  int    `json:"upserted"`
	Removed   int    `json:"removed"`
	Watermark string `json:"watermark"`
}
