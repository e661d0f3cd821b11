package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/trackit/internal/model"
)

// SnapshotVersion is the export document version.
const SnapshotVersion = 1

// ErrInvalidFormat rejects an import document that is missing the workouts
// field or cannot be decoded.
var ErrInvalidFormat = errors.New("ungültiges Datenformat")

// Snapshot is the full-store export document.
type Snapshot struct {
	Version      int                 `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	WorkoutTypes []model.WorkoutType `json:"workoutTypes"`
	Workouts     []*model.Workout    `json:"workouts"`
}

// Export reads the workouts and workout types into a snapshot. Pure read,
// no mutation.
func (s *Store) Export() (*Snapshot, error) {
	workouts, err := s.Workouts()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	types, err := s.WorkoutTypes()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if workouts == nil {
		workouts = []*model.Workout{}
	}
	if types == nil {
		types = []model.WorkoutType{}
	}
	return &Snapshot{
		Version:      SnapshotVersion,
		ExportedAt:   time.Now(),
		WorkoutTypes: types,
		Workouts:     workouts,
	}, nil
}

// Import wholesale-replaces the workouts and workout_types collections with
// the snapshot's contents inside one transaction. Validation runs before
// anything is touched, so a rejected document leaves the store unchanged.
// Drafts and settings are not part of the snapshot.
func (s *Store) Import(snap *Snapshot) error {
	if snap == nil || snap.Workouts == nil {
		return ErrInvalidFormat
	}
	for _, w := range snap.Workouts {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}
	for _, t := range snap.WorkoutTypes {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM workouts`); err != nil {
		return fmt.Errorf("import: clear workouts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM workout_types`); err != nil {
		return fmt.Errorf("import: clear workout types: %w", err)
	}

	for _, w := range snap.Workouts {
		data, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("import: encode workout: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO workouts (id, date, data) VALUES (?, ?, ?)`,
			w.WorkoutID, w.Date.UTC().Format(time.RFC3339), string(data),
		); err != nil {
			return fmt.Errorf("import: insert workout: %w", err)
		}
	}
	for _, t := range snap.WorkoutTypes {
		if _, err := tx.Exec(
			`INSERT INTO workout_types (id, name) VALUES (?, ?)`, t.ID, t.Name,
		); err != nil {
			return fmt.Errorf("import: insert workout type: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}
