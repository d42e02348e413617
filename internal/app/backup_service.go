package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"nutrilog/internal/domain"
)

// BackupService serializes the whole store to a versioned JSON document
// and restores it.
type BackupService struct {
	snap domain.SnapshotRepository

	// now is overridable in tests.
	now func() time.Time
}

// NewBackupService creates a BackupService over the given snapshot port.
func NewBackupService(snap domain.SnapshotRepository) *BackupService {
	return &BackupService{snap: snap, now: time.Now}
}

// Export reads every collection and wraps it with the schema version and
// an export timestamp. Pure read; the store is never mutated.
func (s *BackupService) Export(ctx context.Context) (domain.Snapshot, error) {
	data, err := s.snap.ExportAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		Version:    domain.SnapshotVersion,
		ExportDate: s.now().UTC().Format(time.RFC3339),
		Data:       data,
	}, nil
}

// Import restores a snapshot document. Unknown document versions are
// accepted; forward compatibility is the importer's responsibility, so
// extra fields were already dropped at decode time and missing optional
// fields are regenerated by the store.
func (s *BackupService) Import(ctx context.Context, doc domain.Snapshot, overwrite bool) error {
	return s.snap.ImportAll(ctx, doc.Data, overwrite)
}

// Clear deletes every row from every collection (the reset-to-factory
// flow); the schema stays in place.
func (s *BackupService) Clear(ctx context.Context) error {
	return s.snap.ClearAll(ctx)
}

// ExportToFile writes the export document as indented JSON.
func (s *BackupService) ExportToFile(ctx context.Context, path string) error {
	doc, err := s.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ImportFromFile restores a snapshot from a JSON file written by
// ExportToFile (or by a compatible exporter).
func (s *BackupService) ImportFromFile(ctx context.Context, path string, overwrite bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var doc domain.Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}
	return s.Import(ctx, doc, overwrite)
}

// DefaultExportName returns a timestamped export filename.
func (s *BackupService) DefaultExportName() string {
	return "nutrilog-export-" + s.now().UTC().Format("20060102-150405") + ".json"
}
