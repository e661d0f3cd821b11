package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/trackit/internal/model"
)

// SaveWorkout validates and inserts-or-replaces a workout. UpdatedAt is
// stamped to the current time regardless of the caller-supplied value;
// CreatedAt is whatever the caller carries (preserved across edits).
func (s *Store) SaveWorkout(w *model.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	w.UpdatedAt = time.Now()

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode workout: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO workouts (id, date, data) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET date = excluded.date, data = excluded.data`,
		w.WorkoutID, w.Date.UTC().Format(time.RFC3339), string(data),
	)
	if err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	return nil
}

// Workout returns the workout with the given id, or (nil, nil) when absent.
func (s *Store) Workout(id string) (*model.Workout, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM workouts WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", id, err)
	}
	return decodeWorkout(data)
}

// Workouts returns all workouts, newest date first.
func (s *Store) Workouts() ([]*model.Workout, error) {
	rows, err := s.db.Query(`SELECT data FROM workouts ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*model.Workout
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		w, err := decodeWorkout(data)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (s *Store) DeleteWorkout(id string) error {
	_, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	return nil
}

func decodeWorkout(data string) (*model.Workout, error) {
	var w model.Workout
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("decode workout: %w", err)
	}
	return &w, nil
}
