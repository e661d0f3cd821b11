package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode controls how an exercise's sets are numbered.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeLeftRight Mode = "lr"
)

// WorkoutType is a user-managed category. Names are not unique; duplicates
// are distinct records.
type WorkoutType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Workout struct {
	WorkoutID string     `json:"workoutId"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Date      time.Time  `json:"date"`
	Exercises []Exercise `json:"exercises"`
	Finisher  *Finisher  `json:"finisher,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Exercise struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Mode       Mode   `json:"mode"`
	Sets       []Set  `json:"sets"`
}

// Set is one logged set. Label is derived from position and mode, never
// hand-entered; see sets.go.
type Set struct {
	SetID string `json:"setId"`
	Label string `json:"label"`
	Reps  int    `json:"reps"`
	RPE   int    `json:"rpe"`
	Note  string `json:"note"`
}

// Draft is the single in-progress edit snapshot. At most one exists,
// store-wide, under the constant drafts key.
type Draft struct {
	Workout Workout   `json:"workout"`
	IsEdit  bool      `json:"isEdit"`
	EditID  string    `json:"editId,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

const (
	defaultRPE = 5
	MinRPE     = 1
	MaxRPE     = 10
)

func NewWorkoutType(name string) WorkoutType {
	return WorkoutType{ID: uuid.NewString(), Name: name}
}

// NewSet returns a default set labeled for position i under the given mode.
func NewSet(i int, mode Mode) Set {
	return Set{
		SetID: uuid.NewString(),
		Label: Label(i, mode),
		Reps:  0,
		RPE:   defaultRPE,
	}
}

func NewExercise() Exercise {
	return Exercise{
		ExerciseID: uuid.NewString(),
		Mode:       ModeNormal,
		Sets:       []Set{NewSet(0, ModeNormal)},
	}
}

// NewWorkout returns an empty workout of the given type with one exercise
// holding one set. The name is generated from the type when present.
func NewWorkout(workoutType string) *Workout {
	now := time.Now()
	name := ""
	if workoutType != "" {
		name = GenerateName(workoutType, now)
	}
	return &Workout{
		WorkoutID: uuid.NewString(),
		Type:      workoutType,
		Name:      name,
		Date:      now,
		Exercises: []Exercise{NewExercise()},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GenerateName builds the default workout name, e.g. "Push – 28.08.2026".
func GenerateName(workoutType string, t time.Time) string {
	return fmt.Sprintf("%s – %s", workoutType, FormatDate(t))
}

// FormatDate renders a timestamp as dd.mm.yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime renders a timestamp as dd.mm.yyyy hh:mm.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// Clone returns an independent deep copy. The store boundary never shares
// entities by reference.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	c.Exercises = make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		c.Exercises[i] = ex
		c.Exercises[i].Sets = append([]Set(nil), ex.Sets...)
	}
	if w.Finisher != nil {
		c.Finisher = w.Finisher.Clone()
	}
	return &c
}

// SetCount is the total number of sets across all exercises.
func (w *Workout) SetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// AddExercise appends an empty exercise.
func (w *Workout) AddExercise() {
	w.Exercises = append(w.Exercises, NewExercise())
}

// RemoveExercise removes the exercise at i. The last remaining exercise
// cannot be removed.
func (w *Workout) RemoveExercise(i int) bool {
	if len(w.Exercises) <= 1 || i < 0 || i >= len(w.Exercises) {
		return false
	}
	w.Exercises = append(w.Exercises[:i], w.Exercises[i+1:]...)
	return true
}
