// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ClientStatus is the snapshot printed by the client status command.
type ClientStatus struct {
	DeviceID      string           `json:"device_id"`
	RemoteAddress string           `json:"remote_address"`
	Provider      ProviderState    `json:"provider"`
	ProviderError string           `json:"provider_error,omitempty"`
	Pending       []PendingChanges `json:"pending"`
	Watermarks    []SyncMeta       `json:"watermarks"`
	Build         AppBuildInfo     `json:"build"`
}

// PendingTotal sums the queued entries of all collections.
func (s ClientStatus) PendingTotal() int {
	total := 0
	for _, p := range s.Pending {
		total += p.Count
	}
	return total
}
