// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

// Name and Version of the shop-floor store layout.
const (
	DefaultName    = "shopfloor"
	DefaultVersion = 6
)

// Names of the built-in collections.
const (
	Orders            = "orders"
	Machines          = "machines"
	Supplies          = "supplies"
	StopReasons       = "stop-reasons"
	StopTypes         = "stop-types"
	ProductionEntries = "production-entries"
	Lots              = "lots"
	Stoppages         = "stoppages"
	Settings          = "settings"
	ToolConfigs       = "tool-configs"
)

// Default returns the shop-floor schema. Only orders and production entries
// are synchronised with the remote store; everything else is local-only.
func Default() *Schema {
	return &Schema{
		Name:    DefaultName,
		Version: DefaultVersion,
		Collections: []Collection{
			{
				Name: Orders, KeyPath: "id", Key: KeyExplicit, SyncEnabled: true, Since: 1,
				Indexes: []Index{
					{Name: "order_seq", Field: "order_seq", Since: 1},
					{Name: "customer", Field: "customer", Since: 1},
					{Name: "product", Field: "product", Since: 1},
				},
			},
			{Name: Machines, KeyPath: "id", Key: KeySequence, Since: 1},
			{Name: Supplies, KeyPath: "id", Key: KeySequence, Since: 1},
			{Name: StopReasons, KeyPath: "id", Key: KeySequence, Since: 1},
			{Name: StopTypes, KeyPath: "id", Key: KeySequence, Since: 1},
			// Entries are created on every device; a local sequence would
			// collide once several devices push into the same remote collection.
			{
				Name: ProductionEntries, KeyPath: "id", Key: KeyUUID, SyncEnabled: true, Since: 2,
				Indexes: []Index{
					{Name: "started_at", Field: "started_at", Since: 2},
					{Name: "machine", Field: "machine", Since: 2},
					{Name: "operator", Field: "operator", Since: 2},
				},
			},
			{
				Name: Stoppages, KeyPath: "id", Key: KeySequence, Since: 4,
				Indexes: []Index{
					{Name: "started_at", Field: "started_at", Since: 4},
					{Name: "machine", Field: "machine", Since: 4},
					{Name: "stop_type", Field: "stop_type", Since: 4},
				},
			},
			{
				Name: ToolConfigs, KeyPath: "id", Key: KeySequence, Since: 5,
				Indexes: []Index{
					{Name: "tool", Field: "tool", Since: 5},
				},
			},
			{
				Name: Lots, KeyPath: "id", Key: KeySequence, Since: 6,
				Indexes: []Index{
					{Name: "order_seq", Field: "order_seq", Since: 6},
					{Name: "code", Field: "code", Since: 6},
				},
			},
			{Name: Settings, KeyPath: "key", Key: KeyExplicit, Since: 1},
		},
	}
}
