package model

import "fmt"

// Validation runs at the store boundary so that a corrupt import or a
// hand-edited database row cannot propagate malformed entities into the
// rest of the application.

func (t WorkoutType) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("workout type: missing id")
	}
	return nil
}

func (w *Workout) Validate() error {
	if w == nil {
		return fmt.Errorf("workout: nil")
	}
	if w.WorkoutID == "" {
		return fmt.Errorf("workout: missing workoutId")
	}
	if len(w.Exercises) == 0 {
		return fmt.Errorf("workout %s: no exercises", w.WorkoutID)
	}
	for i := range w.Exercises {
		if err := w.Exercises[i].Validate(); err != nil {
			return fmt.Errorf("workout %s: %w", w.WorkoutID, err)
		}
	}
	if w.Finisher != nil {
		if err := w.Finisher.Validate(); err != nil {
			return fmt.Errorf("workout %s: %w", w.WorkoutID, err)
		}
	}
	return nil
}

func (e *Exercise) Validate() error {
	if e.ExerciseID == "" {
		return fmt.Errorf("exercise: missing exerciseId")
	}
	if e.Mode != ModeNormal && e.Mode != ModeLeftRight {
		return fmt.Errorf("exercise %s: unknown mode %q", e.ExerciseID, e.Mode)
	}
	if len(e.Sets) == 0 {
		return fmt.Errorf("exercise %s: no sets", e.ExerciseID)
	}
	for i := range e.Sets {
		if err := e.Sets[i].Validate(); err != nil {
			return fmt.Errorf("exercise %s: %w", e.ExerciseID, err)
		}
	}
	return nil
}

func (s *Set) Validate() error {
	if s.SetID == "" {
		return fmt.Errorf("set: missing setId")
	}
	if s.Reps < 0 {
		return fmt.Errorf("set %s: negative reps", s.SetID)
	}
	if s.RPE < MinRPE || s.RPE > MaxRPE {
		return fmt.Errorf("set %s: rpe %d out of range", s.SetID, s.RPE)
	}
	return nil
}

func (f *Finisher) Validate() error {
	switch f.Type {
	case FinisherAMRAP, FinisherEMOM, FinisherNormal:
	default:
		return fmt.Errorf("finisher: unknown type %q", f.Type)
	}
	if len(f.Entries) == 0 {
		return fmt.Errorf("finisher: no entries")
	}
	for i := range f.Entries {
		e := &f.Entries[i]
		if e.ID == "" {
			return fmt.Errorf("finisher entry: missing id")
		}
		if e.RPE < MinRPE || e.RPE > MaxRPE {
			return fmt.Errorf("finisher entry %s: rpe %d out of range", e.ID, e.RPE)
		}
		if f.Type == FinisherNormal {
			for j := range e.Sets {
				if err := e.Sets[j].Validate(); err != nil {
					return fmt.Errorf("finisher entry %s: %w", e.ID, err)
				}
			}
		}
	}
	return nil
}
