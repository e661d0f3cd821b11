package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sadopc/trackit/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// saveWorkout is a test helper that builds and persists a workout dated at
// the given offset from now.
func saveWorkout(t *testing.T, s *Store, workoutType string, dateOffset time.Duration) *model.Workout {
	t.Helper()
	w := model.NewWorkout(workoutType)
	w.Date = time.Now().Add(dateOffset)
	if err := s.SaveWorkout(w); err != nil {
		t.Fatalf("save workout: %v", err)
	}
	return w
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/trackit.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: must not re-migrate and not re-seed
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	types, err := s2.WorkoutTypes()
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 5 {
		t.Fatalf("expected 5 seeded types after reopen, got %d", len(types))
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Workout types
// ============================================================

func TestDefaultTypesSeeded(t *testing.T) {
	s := newTestStore(t)
	types, err := s.WorkoutTypes()
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 5 {
		t.Fatalf("expected 5 default types, got %d", len(types))
	}
	names := make(map[string]bool)
	for _, ty := range types {
		if ty.ID == "" {
			t.Fatal("seeded type without id")
		}
		names[ty.Name] = true
	}
	for _, want := range []string{"Push", "Pull", "Beine", "Arme", "Ganzkörper"} {
		if !names[want] {
			t.Fatalf("missing default type %q", want)
		}
	}
}

func TestSeedingFiresOnlyOnEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.seedWorkoutTypes(); err != nil {
		t.Fatal(err)
	}
	types, _ := s.WorkoutTypes()
	if len(types) != 5 {
		t.Fatalf("re-seeding a non-empty collection should be a no-op, got %d types", len(types))
	}
}

func TestSaveRenameDeleteType(t *testing.T) {
	s := newTestStore(t)
	ty := model.NewWorkoutType("Core")
	if err := s.SaveWorkoutType(ty); err != nil {
		t.Fatal(err)
	}

	ty.Name = "Rumpf"
	if err := s.SaveWorkoutType(ty); err != nil {
		t.Fatal(err)
	}
	types, _ := s.WorkoutTypes()
	found := false
	for _, got := range types {
		if got.ID == ty.ID {
			found = true
			if got.Name != "Rumpf" {
				t.Fatalf("rename not persisted: %+v", got)
			}
		}
	}
	if !found {
		t.Fatal("saved type not listed")
	}

	if err := s.DeleteWorkoutType(ty.ID); err != nil {
		t.Fatal(err)
	}
	types, _ = s.WorkoutTypes()
	for _, got := range types {
		if got.ID == ty.ID {
			t.Fatal("type still present after delete")
		}
	}
}

func TestDuplicateTypeNamesAllowed(t *testing.T) {
	s := newTestStore(t)
	a := model.NewWorkoutType("Push")
	if err := s.SaveWorkoutType(a); err != nil {
		t.Fatal(err)
	}
	types, _ := s.WorkoutTypes()
	count := 0
	for _, ty := range types {
		if ty.Name == "Push" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected two distinct records named Push, got %d", count)
	}
}

func TestTypeDeletionDoesNotCascade(t *testing.T) {
	s := newTestStore(t)
	w := saveWorkout(t, s, "Push", 0)

	types, _ := s.WorkoutTypes()
	for _, ty := range types {
		if ty.Name == "Push" {
			if err := s.DeleteWorkoutType(ty.ID); err != nil {
				t.Fatal(err)
			}
		}
	}

	got, err := s.Workout(w.WorkoutID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != "Push" {
		t.Fatalf("workout type changed to %q after type deletion", got.Type)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestWorkoutRoundTrip(t *testing.T) {
	s := newTestStore(t)
	w := model.NewWorkout("Pull")
	w.Exercises[0].Name = "Klimmzüge"
	w.Exercises[0].Sets[0].Reps = 8
	w.Exercises[0].Sets[0].RPE = 7
	w.Exercises[0].Sets[0].Note = "breiter Griff"
	w.Finisher = model.NewFinisher(model.FinisherAMRAP)
	w.Finisher.Entries[0].Result = "40 Wdh"
	created := w.CreatedAt

	before := time.Now()
	if err := s.SaveWorkout(w); err != nil {
		t.Fatal(err)
	}

	got, err := s.Workout(w.WorkoutID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("workout not found after save")
	}
	if got.UpdatedAt.Before(before) {
		t.Fatal("updatedAt not refreshed on save")
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatal("createdAt must be preserved")
	}

	// Content identical except the refreshed updatedAt.
	got.UpdatedAt = w.UpdatedAt
	a, _ := json.Marshal(w)
	b, _ := json.Marshal(got)
	if string(a) != string(b) {
		t.Fatalf("round trip mismatch:\n%s\n%s", a, b)
	}
}

func TestWorkoutAbsentIsNil(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Workout("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil for absent workout")
	}
}

func TestWorkoutsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	old := saveWorkout(t, s, "Push", -48*time.Hour)
	mid := saveWorkout(t, s, "Pull", -24*time.Hour)
	newest := saveWorkout(t, s, "Beine", 0)

	list, err := s.Workouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(list))
	}
	wantOrder := []string{newest.WorkoutID, mid.WorkoutID, old.WorkoutID}
	for i, want := range wantOrder {
		if list[i].WorkoutID != want {
			t.Fatalf("position %d: got %s want %s", i, list[i].WorkoutID, want)
		}
	}
}

func TestSaveWorkoutReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	w := saveWorkout(t, s, "Push", 0)

	w.Name = "umbenannt"
	w.Exercises[0].AddSet()
	if err := s.SaveWorkout(w); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Workout(w.WorkoutID)
	if got.Name != "umbenannt" || len(got.Exercises[0].Sets) != 2 {
		t.Fatalf("replace not wholesale: %+v", got)
	}

	list, _ := s.Workouts()
	if len(list) != 1 {
		t.Fatalf("insert-or-replace duplicated the row: %d rows", len(list))
	}
}

func TestSaveWorkoutRejectsMalformed(t *testing.T) {
	s := newTestStore(t)
	w := model.NewWorkout("Push")
	w.Exercises = nil
	if err := s.SaveWorkout(w); err == nil {
		t.Fatal("workout without exercises should be rejected at the store boundary")
	}
	list, _ := s.Workouts()
	if len(list) != 0 {
		t.Fatal("rejected workout must not be persisted")
	}
}

func TestDeleteWorkout(t *testing.T) {
	s := newTestStore(t)
	w := saveWorkout(t, s, "Push", 0)
	if err := s.DeleteWorkout(w.WorkoutID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Workout(w.WorkoutID)
	if got != nil {
		t.Fatal("workout still present after delete")
	}
}

func TestStoreReturnsIndependentCopies(t *testing.T) {
	s := newTestStore(t)
	w := saveWorkout(t, s, "Push", 0)

	first, _ := s.Workout(w.WorkoutID)
	first.Exercises[0].Name = "mutiert"

	second, _ := s.Workout(w.WorkoutID)
	if second.Exercises[0].Name == "mutiert" {
		t.Fatal("reads share storage")
	}
}

// ============================================================
// Drafts
// ============================================================

func TestDraftLifecycle(t *testing.T) {
	s := newTestStore(t)

	d, err := s.Draft()
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Fatal("fresh store should have no draft")
	}

	w := model.NewWorkout("Push")
	before := time.Now()
	if err := s.SaveDraft(model.Draft{Workout: *w, IsEdit: true, EditID: w.WorkoutID}); err != nil {
		t.Fatal(err)
	}

	d, err = s.Draft()
	if err != nil {
		t.Fatal(err)
	}
	if d == nil {
		t.Fatal("draft not found after save")
	}
	if !d.IsEdit || d.EditID != w.WorkoutID {
		t.Fatalf("edit tag lost: %+v", d)
	}
	if d.SavedAt.Before(before) {
		t.Fatal("savedAt not stamped")
	}

	if err := s.ClearDraft(); err != nil {
		t.Fatal(err)
	}
	d, _ = s.Draft()
	if d != nil {
		t.Fatal("draft still present after clear")
	}

	// Clearing again is a no-op, not an error.
	if err := s.ClearDraft(); err != nil {
		t.Fatal(err)
	}
}

func TestDraftSingletonLastWriterWins(t *testing.T) {
	s := newTestStore(t)
	first := model.NewWorkout("Push")
	second := model.NewWorkout("Pull")

	s.SaveDraft(model.Draft{Workout: *first})
	s.SaveDraft(model.Draft{Workout: *second})

	d, _ := s.Draft()
	if d.Workout.WorkoutID != second.WorkoutID {
		t.Fatal("second draft did not overwrite the first")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	v, err := s.Setting("accent_color")
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Fatalf("absent setting should be empty, got %q", v)
	}

	if err := s.SetSetting("accent_color", "#6C63FF"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("accent_color", "#2EC4B6"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.Setting("accent_color")
	if v != "#2EC4B6" {
		t.Fatalf("expected last write, got %q", v)
	}
}

// ============================================================
// Export / import
// ============================================================

func TestExportImportIdempotent(t *testing.T) {
	s := newTestStore(t)
	saveWorkout(t, s, "Push", -24*time.Hour)
	saveWorkout(t, s, "Pull", 0)

	snap, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Version != 1 {
		t.Fatalf("unexpected snapshot version %d", snap.Version)
	}

	if err := s.Import(snap); err != nil {
		t.Fatal(err)
	}

	after, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(snap.Workouts)
	b, _ := json.Marshal(after.Workouts)
	if string(a) != string(b) {
		t.Fatal("workouts differ after import(export())")
	}
	at, _ := json.Marshal(snap.WorkoutTypes)
	bt, _ := json.Marshal(after.WorkoutTypes)
	if string(at) != string(bt) {
		t.Fatal("workout types differ after import(export())")
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	s := newTestStore(t)
	existing := saveWorkout(t, s, "Push", 0)

	for _, snap := range []*Snapshot{nil, {}, {Version: 1}} {
		err := s.Import(snap)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("expected ErrInvalidFormat, got %v", err)
		}
	}

	// A rejected import must not mutate anything.
	got, _ := s.Workout(existing.WorkoutID)
	if got == nil {
		t.Fatal("rejected import destroyed existing data")
	}
}

func TestImportEmptyWorkoutsWipes(t *testing.T) {
	s := newTestStore(t)
	saveWorkout(t, s, "Push", 0)

	if err := s.Import(&Snapshot{Workouts: []*model.Workout{}}); err != nil {
		t.Fatal(err)
	}
	list, _ := s.Workouts()
	if len(list) != 0 {
		t.Fatalf("expected wiped collection, got %d workouts", len(list))
	}
	types, _ := s.WorkoutTypes()
	if len(types) != 0 {
		t.Fatalf("absent workoutTypes treated as empty replace, got %d", len(types))
	}
}

func TestImportReplacesNotMerges(t *testing.T) {
	s := newTestStore(t)
	saveWorkout(t, s, "Push", 0)
	incoming := model.NewWorkout("Beine")

	err := s.Import(&Snapshot{
		Workouts:     []*model.Workout{incoming},
		WorkoutTypes: []model.WorkoutType{model.NewWorkoutType("Beine")},
	})
	if err != nil {
		t.Fatal(err)
	}

	list, _ := s.Workouts()
	if len(list) != 1 || list[0].WorkoutID != incoming.WorkoutID {
		t.Fatalf("import should replace wholesale: %+v", list)
	}
	types, _ := s.WorkoutTypes()
	if len(types) != 1 || types[0].Name != "Beine" {
		t.Fatalf("types should be replaced wholesale: %+v", types)
	}
}

func TestImportLeavesDraftAndSettings(t *testing.T) {
	s := newTestStore(t)
	w := model.NewWorkout("Push")
	s.SaveDraft(model.Draft{Workout: *w})
	s.SetSetting("accent_color", "#6C63FF")

	if err := s.Import(&Snapshot{Workouts: []*model.Workout{}}); err != nil {
		t.Fatal(err)
	}

	d, _ := s.Draft()
	if d == nil {
		t.Fatal("import must not touch the draft")
	}
	v, _ := s.Setting("accent_color")
	if v != "#6C63FF" {
		t.Fatal("import must not touch settings")
	}
}

func TestImportValidatesBeforeReplacing(t *testing.T) {
	s := newTestStore(t)
	existing := saveWorkout(t, s, "Push", 0)

	bad := model.NewWorkout("Pull")
	bad.Exercises[0].Sets[0].RPE = 42
	err := s.Import(&Snapshot{Workouts: []*model.Workout{bad}})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	got, _ := s.Workout(existing.WorkoutID)
	if got == nil {
		t.Fatal("validation failure after mutation: existing data lost")
	}
}
