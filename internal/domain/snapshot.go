// Package domain contains the core business entities and interfaces.
package domain

import "context"

// SnapshotVersion is the schema version tag written into every export.
const SnapshotVersion = "2.0.0"

// Snapshot is the full-store export document.
type Snapshot struct {
	Version    string       `json:"version"`
	ExportDate string       `json:"exportDate"`
	Data       SnapshotData `json:"data"`
}

// SnapshotData carries every row of every collection.
type SnapshotData struct {
	Meals         []MealRecord   `json:"meals"`
	WaterRecords  []WaterRecord  `json:"water_records"`
	WeightRecords []WeightRecord `json:"weight_records"`
	UserSettings  []UserSettings `json:"user_settings"`
}

// SnapshotRepository is the port for whole-store serialization.
//
// ExportAll is a pure read. ImportAll runs as a single transaction: with
// overwrite it clears all four collections before inserting, otherwise
// incoming rows are inserted alongside existing ones (settings replace by
// id, the rest insert and conflict on duplicate ids); any failure rolls
// the whole import back. ClearAll removes every row but keeps the schema.
type SnapshotRepository interface {
	ExportAll(ctx context.Context) (SnapshotData, error)
	ImportAll(ctx context.Context, data SnapshotData, overwrite bool) error
	ClearAll(ctx context.Context) error
}
