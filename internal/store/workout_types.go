package store

import (
	"fmt"

	"github.com/sadopc/trackit/internal/model"
)

// SaveWorkoutType inserts-or-replaces a type record. Deleting a type never
// touches workouts; a workout's type is a free-standing string.
func (s *Store) SaveWorkoutType(t model.WorkoutType) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("save workout type: %w", err)
	}
	_, err := s.db.Exec(
		`INSERT INTO workout_types (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		t.ID, t.Name,
	)
	if err != nil {
		return fmt.Errorf("save workout type: %w", err)
	}
	return nil
}

func (s *Store) WorkoutTypes() ([]model.WorkoutType, error) {
	rows, err := s.db.Query(`SELECT id, name FROM workout_types`)
	if err != nil {
		return nil, fmt.Errorf("list workout types: %w", err)
	}
	defer rows.Close()

	var types []model.WorkoutType
	for rows.Next() {
		var t model.WorkoutType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *Store) DeleteWorkoutType(id string) error {
	_, err := s.db.Exec(`DELETE FROM workout_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout type %s: %w", id, err)
	}
	return nil
}
