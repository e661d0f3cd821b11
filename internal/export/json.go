package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/trackit/internal/store"
)

// SnapshotFilename names the export file for the given day, e.g.
// track-it-export-28-08-2026.json.
func SnapshotFilename(t time.Time) string {
	return fmt.Sprintf("track-it-export-%s.json", t.Format("02-01-2006"))
}

// WriteSnapshot writes the snapshot as indented JSON into dir and returns
// the full path.
func WriteSnapshot(snap *store.Snapshot, dir string) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	path := filepath.Join(dir, SnapshotFilename(snap.ExportedAt))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}
	return path, nil
}

// ReadSnapshot parses an import file. Undecodable content is an invalid
// format, not an IO error; validation of the decoded entities happens in
// the store's Import.
func ReadSnapshot(path string) (*store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidFormat, err)
	}
	return &snap, nil
}
