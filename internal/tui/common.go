package tui

import (
	"fmt"
	"strings"

	"github.com/sadopc/trackit/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewEditor
	viewHistory
	viewSettings
)

var viewNames = []string{"Dashboard", "Neu", "Verlauf", "Einstellungen"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// openEditorMsg mounts the editor with the given workout. isEdit marks an
// edit of an already saved workout; resumed carries the draft's autosave
// tag when the session continues an abandoned one.
type openEditorMsg struct {
	workout *model.Workout
	isEdit  bool
	editID  string
}

// editorClosedMsg is emitted after save or cancel; saved and wasEdit
// select the view the app returns to.
type editorClosedMsg struct {
	saved   bool
	wasEdit bool
}

type workoutDeletedMsg struct{}

type draftDiscardedMsg struct{}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct{}

type accentChangedMsg struct {
	color string
}

// --- Helpers ---

func formatAvgRPE(avg float64, ok bool) string {
	if !ok {
		return "–"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", avg), "0"), ".")
}

func pluralSets(n int) string {
	if n == 1 {
		return "1 Satz"
	}
	return fmt.Sprintf("%d Sätze", n)
}

func workoutTitle(w *model.Workout) string {
	if w.Name != "" {
		return w.Name
	}
	if w.Type != "" {
		return w.Type
	}
	return "Workout"
}
