// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProviderKind names a backing store that can serve reads and writes.
type ProviderKind string

const (
	// ProviderRemote is the authoritative remote relational store.
	ProviderRemote ProviderKind = "remote"
	// ProviderLocal is the on-device SQLite store.
	ProviderLocal ProviderKind = "local"
)

// Other returns the opposite provider kind.
func (k ProviderKind) Other() ProviderKind {
	if k == ProviderRemote {
		return ProviderLocal
	}
	return ProviderRemote
}

// KindFor maps a remote preference flag to a provider kind.
func KindFor(preferRemote bool) ProviderKind {
	if preferRemote {
		return ProviderRemote
	}
	return ProviderLocal
}

// ProviderState is the process-wide provider selection. It is not persisted
// and is re-derived at startup.
type ProviderState struct {
	Active    ProviderKind `json:"active_provider"`
	Connected bool         `json:"connected"`
	LastError error        `json:"-"`
}
