package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/trackit/internal/draft"
	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/store"
)

// editorState is shared between the editor model and the autosave
// manager's goroutine. Every access goes through mu; the snapshot handed
// to the manager is always a deep copy.
type editorState struct {
	mu      sync.Mutex
	workout *model.Workout
	isEdit  bool
	editID  string
}

func (st *editorState) snapshot() draft.Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.workout == nil {
		return draft.Snapshot{}
	}
	return draft.Snapshot{Workout: st.workout.Clone(), IsEdit: st.isEdit, EditID: st.editID}
}

type rowKind int

const (
	rowExercise rowKind = iota
	rowSet
	rowFinisher
	rowEntry
	rowEntrySet
)

// editorRow is one selectable line of the structure list. The indices
// that don't apply to the kind stay -1.
type editorRow struct {
	kind  rowKind
	ex    int
	set   int
	entry int
}

type formKind int

const (
	formNone formKind = iota
	formMeta
	formExercise
	formSet
	formEntry
)

type editorModel struct {
	store  *store.Store
	width  int
	height int

	active  bool
	state   *editorState
	manager *draft.Manager

	types  []model.WorkoutType
	rows   []editorRow
	cursor int

	confirmCancel bool

	formActive bool
	form       *huh.Form
	formKind   formKind
	formTarget editorRow

	// Form field pointers (survive value copies)
	fName   *string
	fType   *string
	fDate   *string
	fReps   *string
	fRPE    *string
	fNote   *string
	fResult *string
}

func newEditorModel(s *store.Store) editorModel {
	name, typ, date := "", "", ""
	reps, rpe, note, result := "", "", "", ""
	return editorModel{
		store:   s,
		fName:   &name,
		fType:   &typ,
		fDate:   &date,
		fReps:   &reps,
		fRPE:    &rpe,
		fNote:   &note,
		fResult: &result,
	}
}

func (e *editorModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

// open mounts the editor session and starts autosaving. An edit of an
// existing workout drops a draft immediately so interrupted sessions
// resume into it without waiting for the first tick.
func (e editorModel) open(msg openEditorMsg) (editorModel, tea.Cmd) {
	if e.manager != nil {
		e.manager.Stop()
	}
	e.state = &editorState{workout: msg.workout, isEdit: msg.isEdit, editID: msg.editID}
	e.manager = draft.NewManager(e.store, e.state.snapshot)
	e.manager.Start()
	if msg.isEdit {
		e.manager.Save()
	}

	e.active = true
	e.cursor = 0
	e.confirmCancel = false
	e.formActive = false
	e.form = nil
	e.rebuildRows()
	return e, e.loadTypes()
}

type editorTypesMsg struct {
	types []model.WorkoutType
}

func (e editorModel) loadTypes() tea.Cmd {
	return func() tea.Msg {
		types, _ := e.store.WorkoutTypes()
		return editorTypesMsg{types: types}
	}
}

func (e *editorModel) rebuildRows() {
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	w := e.state.workout

	e.rows = e.rows[:0]
	for i, ex := range w.Exercises {
		e.rows = append(e.rows, editorRow{kind: rowExercise, ex: i, set: -1, entry: -1})
		for j := range ex.Sets {
			e.rows = append(e.rows, editorRow{kind: rowSet, ex: i, set: j, entry: -1})
		}
	}
	if w.Finisher != nil {
		e.rows = append(e.rows, editorRow{kind: rowFinisher, ex: -1, set: -1, entry: -1})
		for i, entry := range w.Finisher.Entries {
			e.rows = append(e.rows, editorRow{kind: rowEntry, ex: -1, set: -1, entry: i})
			if w.Finisher.Type == model.FinisherNormal {
				for j := range entry.Sets {
					e.rows = append(e.rows, editorRow{kind: rowEntrySet, ex: -1, set: j, entry: i})
				}
			}
		}
	}
	if e.cursor >= len(e.rows) {
		e.cursor = max(0, len(e.rows)-1)
	}
}

// mutate runs fn on the workout under the state lock.
func (e *editorModel) mutate(fn func(w *model.Workout)) {
	e.state.mu.Lock()
	fn(e.state.workout)
	e.state.mu.Unlock()
	e.rebuildRows()
}

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case editorTypesMsg:
		e.types = msg.types
		return e, nil

	case tea.KeyMsg:
		if !e.active {
			return e, nil
		}
		if e.formActive && e.form != nil {
			return e.updateForm(msg)
		}
		if e.confirmCancel {
			return e.updateConfirm(msg)
		}
		return e.updateKeys(msg)
	}
	return e, nil
}

func (e editorModel) updateKeys(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if e.cursor > 0 {
			e.cursor--
		}
	case key.Matches(msg, keys.Down):
		if e.cursor < len(e.rows)-1 {
			e.cursor++
		}

	case key.Matches(msg, keys.New):
		e.mutate(func(w *model.Workout) { w.AddExercise() })

	case key.Matches(msg, keys.AddSet):
		return e.addAtCursor()

	case key.Matches(msg, keys.Delete):
		return e.removeAtCursor()

	case key.Matches(msg, keys.Mode):
		return e.toggleMode()

	case key.Matches(msg, keys.Finisher):
		e.mutate(func(w *model.Workout) {
			if w.Finisher == nil {
				w.Finisher = model.NewFinisher(model.FinisherAMRAP)
			} else {
				w.Finisher = nil
			}
		})

	case key.Matches(msg, keys.Cycle):
		e.mutate(func(w *model.Workout) {
			if w.Finisher == nil {
				return
			}
			switch w.Finisher.Type {
			case model.FinisherAMRAP:
				w.Finisher.SwitchType(model.FinisherEMOM)
			case model.FinisherEMOM:
				w.Finisher.SwitchType(model.FinisherNormal)
			default:
				w.Finisher.SwitchType(model.FinisherAMRAP)
			}
		})

	case key.Matches(msg, keys.Meta):
		return e.showMetaForm()

	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
		return e.showRowForm()

	case key.Matches(msg, keys.Save):
		return e.save()

	case key.Matches(msg, keys.Back):
		e.confirmCancel = true
	}
	return e, nil
}

func (e editorModel) updateConfirm(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		e.confirmCancel = false
		return e.cancel()
	case key.Matches(msg, keys.Back):
		e.confirmCancel = false
	}
	return e, nil
}

func (e editorModel) focusedRow() (editorRow, bool) {
	if e.cursor >= len(e.rows) {
		return editorRow{}, false
	}
	return e.rows[e.cursor], true
}

func (e editorModel) addAtCursor() (editorModel, tea.Cmd) {
	row, ok := e.focusedRow()
	if !ok {
		return e, nil
	}
	switch row.kind {
	case rowExercise, rowSet:
		e.mutate(func(w *model.Workout) { w.Exercises[row.ex].AddSet() })
	case rowFinisher:
		e.mutate(func(w *model.Workout) { w.Finisher.AddEntry() })
	case rowEntry, rowEntrySet:
		e.mutate(func(w *model.Workout) {
			if w.Finisher.Type != model.FinisherNormal {
				return
			}
			entry := &w.Finisher.Entries[row.entry]
			entry.Sets = append(entry.Sets, model.NewSet(len(entry.Sets), model.ModeNormal))
		})
	}
	return e, nil
}

func (e editorModel) removeAtCursor() (editorModel, tea.Cmd) {
	row, ok := e.focusedRow()
	if !ok {
		return e, nil
	}
	refused := ""
	switch row.kind {
	case rowExercise:
		e.mutate(func(w *model.Workout) {
			if !w.RemoveExercise(row.ex) {
				refused = "Mindestens eine Übung erforderlich"
			}
		})
	case rowSet:
		e.mutate(func(w *model.Workout) {
			if !w.Exercises[row.ex].RemoveSet(row.set) {
				refused = "Mindestens ein Satz pro Übung erforderlich"
			}
		})
	case rowFinisher:
		e.mutate(func(w *model.Workout) { w.Finisher = nil })
	case rowEntry:
		e.mutate(func(w *model.Workout) {
			if !w.Finisher.RemoveEntry(row.entry) {
				refused = "Mindestens eine Finisher-Übung erforderlich"
			}
		})
	case rowEntrySet:
		e.mutate(func(w *model.Workout) {
			entry := &w.Finisher.Entries[row.entry]
			if len(entry.Sets) <= 1 {
				refused = "Mindestens ein Satz erforderlich"
				return
			}
			entry.Sets = append(entry.Sets[:row.set], entry.Sets[row.set+1:]...)
			for i := range entry.Sets {
				entry.Sets[i].Label = model.Label(i, model.ModeNormal)
			}
		})
	}
	if refused != "" {
		text := refused
		return e, func() tea.Msg { return statusMsg{text: text, isError: true} }
	}
	return e, nil
}

func (e editorModel) toggleMode() (editorModel, tea.Cmd) {
	row, ok := e.focusedRow()
	if !ok || (row.kind != rowExercise && row.kind != rowSet) {
		return e, nil
	}
	e.mutate(func(w *model.Workout) {
		ex := &w.Exercises[row.ex]
		if ex.Mode == model.ModeNormal {
			ex.SwitchMode(model.ModeLeftRight)
		} else {
			ex.SwitchMode(model.ModeNormal)
		}
	})
	return e, nil
}

// --- Forms ---

func (e editorModel) showMetaForm() (editorModel, tea.Cmd) {
	e.state.mu.Lock()
	w := e.state.workout
	*e.fName = w.Name
	*e.fType = w.Type
	*e.fDate = model.FormatDate(w.Date)
	e.state.mu.Unlock()

	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(e.fName),
	}
	if len(e.types) > 0 {
		options := make([]huh.Option[string], len(e.types))
		for i, t := range e.types {
			options[i] = huh.NewOption(t.Name, t.Name)
		}
		fields = append(fields, huh.NewSelect[string]().Title("Typ").Options(options...).Value(e.fType))
	} else {
		fields = append(fields, huh.NewInput().Title("Typ").Value(e.fType))
	}
	fields = append(fields, huh.NewInput().Title("Datum (tt.mm.jjjj)").Value(e.fDate))

	e.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	e.formKind = formMeta
	e.formActive = true
	return e, e.form.Init()
}

func (e editorModel) showRowForm() (editorModel, tea.Cmd) {
	row, ok := e.focusedRow()
	if !ok {
		return e, nil
	}

	e.state.mu.Lock()
	w := e.state.workout
	var fields []huh.Field
	switch row.kind {
	case rowExercise:
		*e.fName = w.Exercises[row.ex].Name
		fields = []huh.Field{huh.NewInput().Title("Übung").Value(e.fName)}
		e.formKind = formExercise

	case rowSet, rowEntrySet:
		var set model.Set
		if row.kind == rowSet {
			set = w.Exercises[row.ex].Sets[row.set]
		} else {
			set = w.Finisher.Entries[row.entry].Sets[row.set]
		}
		*e.fReps = strconv.Itoa(set.Reps)
		*e.fRPE = strconv.Itoa(set.RPE)
		*e.fNote = set.Note
		fields = []huh.Field{
			huh.NewInput().Title("Wiederholungen").Value(e.fReps),
			huh.NewInput().Title("RPE (1–10)").Value(e.fRPE),
			huh.NewInput().Title("Notiz").Value(e.fNote),
		}
		e.formKind = formSet

	case rowEntry:
		entry := w.Finisher.Entries[row.entry]
		*e.fName = entry.Name
		fields = []huh.Field{huh.NewInput().Title("Übung").Value(e.fName)}
		if w.Finisher.Type != model.FinisherNormal {
			*e.fResult = entry.Result
			*e.fRPE = strconv.Itoa(entry.RPE)
			*e.fNote = entry.Note
			fields = append(fields,
				huh.NewInput().Title("Ergebnis").Value(e.fResult),
				huh.NewInput().Title("RPE (1–10)").Value(e.fRPE),
				huh.NewInput().Title("Notiz").Value(e.fNote),
			)
		}
		e.formKind = formEntry

	default:
		e.state.mu.Unlock()
		return e, nil
	}
	e.state.mu.Unlock()

	e.formTarget = row
	e.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	e.formActive = true
	return e, e.form.Init()
}

func (e editorModel) updateForm(msg tea.Msg) (editorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		e.form = nil
		e.applyForm()
		return e, nil
	}

	return e, cmd
}

func (e *editorModel) applyForm() {
	switch e.formKind {
	case formMeta:
		e.mutate(func(w *model.Workout) {
			submitted := strings.TrimSpace(*e.fName)
			wasGenerated := w.Name == "" || w.Name == model.GenerateName(w.Type, w.Date)
			// An untouched auto-generated name follows type and date.
			keepAuto := submitted == "" || (wasGenerated && submitted == w.Name)

			w.Type = strings.TrimSpace(*e.fType)
			if d, err := time.Parse("02.01.2006", strings.TrimSpace(*e.fDate)); err == nil {
				w.Date = d
			}
			if keepAuto && w.Type != "" {
				w.Name = model.GenerateName(w.Type, w.Date)
			} else {
				w.Name = submitted
			}
		})

	case formExercise:
		row := e.formTarget
		e.mutate(func(w *model.Workout) {
			if row.ex < len(w.Exercises) {
				w.Exercises[row.ex].Name = strings.TrimSpace(*e.fName)
			}
		})

	case formSet:
		row := e.formTarget
		e.mutate(func(w *model.Workout) {
			var set *model.Set
			switch {
			case row.kind == rowSet && row.ex < len(w.Exercises) && row.set < len(w.Exercises[row.ex].Sets):
				set = &w.Exercises[row.ex].Sets[row.set]
			case row.kind == rowEntrySet && w.Finisher != nil && row.entry < len(w.Finisher.Entries) && row.set < len(w.Finisher.Entries[row.entry].Sets):
				set = &w.Finisher.Entries[row.entry].Sets[row.set]
			}
			if set == nil {
				return
			}
			if reps, err := strconv.Atoi(strings.TrimSpace(*e.fReps)); err == nil && reps >= 0 {
				set.Reps = reps
			}
			if rpe, err := strconv.Atoi(strings.TrimSpace(*e.fRPE)); err == nil {
				set.RPE = min(max(rpe, model.MinRPE), model.MaxRPE)
			}
			set.Note = strings.TrimSpace(*e.fNote)
		})

	case formEntry:
		row := e.formTarget
		e.mutate(func(w *model.Workout) {
			if w.Finisher == nil || row.entry >= len(w.Finisher.Entries) {
				return
			}
			entry := &w.Finisher.Entries[row.entry]
			entry.Name = strings.TrimSpace(*e.fName)
			if w.Finisher.Type != model.FinisherNormal {
				entry.Result = strings.TrimSpace(*e.fResult)
				if rpe, err := strconv.Atoi(strings.TrimSpace(*e.fRPE)); err == nil {
					entry.RPE = min(max(rpe, model.MinRPE), model.MaxRPE)
				}
				entry.Note = strings.TrimSpace(*e.fNote)
			}
		})
	}
	e.formKind = formNone
}

// --- Lifecycle ---

func (e editorModel) save() (editorModel, tea.Cmd) {
	snap := e.state.snapshot()
	w := snap.Workout
	if snap.IsEdit {
		w.WorkoutID = snap.EditID
	}
	if w.Name == "" && w.Type != "" {
		w.Name = model.GenerateName(w.Type, w.Date)
	}
	if w.Name == "" {
		return e, func() tea.Msg {
			return statusMsg{text: "Name erforderlich", isError: true}
		}
	}
	if err := w.Validate(); err != nil {
		return e, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Ungültig: %v", err), isError: true}
		}
	}

	st := e.store
	manager := e.manager
	e.active = false
	e.manager = nil
	return e, func() tea.Msg {
		manager.Stop()
		if err := st.SaveWorkout(w); err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		if err := manager.Clear(); err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return editorClosedMsg{saved: true, wasEdit: snap.IsEdit}
	}
}

func (e editorModel) cancel() (editorModel, tea.Cmd) {
	manager := e.manager
	wasEdit := false
	if e.state != nil {
		e.state.mu.Lock()
		wasEdit = e.state.isEdit
		e.state.mu.Unlock()
	}
	e.active = false
	e.manager = nil
	return e, func() tea.Msg {
		if err := manager.Clear(); err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return editorClosedMsg{saved: false, wasEdit: wasEdit}
	}
}

// --- View ---

func (e editorModel) view() string {
	w := e.width - 4

	if !e.active || e.state == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("Kein aktives Workout. Drücke n auf dem Dashboard."),
		)
	}

	if e.formActive && e.form != nil {
		title := titleStyle.Render(e.formTitle())
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View()),
		)
	}

	if e.confirmCancel {
		title := errorStyle.Render("Änderungen verwerfen?")
		hint := mutedStyle.Render("enter: verwerfen  esc: weiter bearbeiten")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", hint),
		)
	}

	snap := e.state.snapshot()
	wo := snap.Workout

	header := e.renderMeta(wo, snap.IsEdit, w)
	body := e.renderRows(wo, w)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (e editorModel) formTitle() string {
	switch e.formKind {
	case formMeta:
		return "Workout-Daten"
	case formExercise:
		return "Übung"
	case formSet:
		return "Satz"
	case formEntry:
		return "Finisher-Übung"
	}
	return ""
}

func (e editorModel) renderMeta(wo *model.Workout, isEdit bool, w int) string {
	mode := "Neues Workout"
	if isEdit {
		mode = "Workout bearbeiten"
	}
	title := titleStyle.Render(mode)
	name := workoutTitle(wo)
	meta := fmt.Sprintf("%s  %s", highlightStyle.Render(name), mutedStyle.Render(model.FormatDate(wo.Date)))
	if wo.Type != "" {
		meta += mutedStyle.Render("  · " + wo.Type)
	}
	autosave := mutedStyle.Render("Automatische Sicherung aktiv")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, meta, autosave),
	)
}

func (e editorModel) renderRows(wo *model.Workout, w int) string {
	var rows []string

	for i, row := range e.rows {
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		var line string
		switch row.kind {
		case rowExercise:
			ex := wo.Exercises[row.ex]
			name := ex.Name
			if name == "" {
				name = "Unbenannte Übung"
			}
			tag := ""
			if ex.Mode == model.ModeLeftRight {
				tag = "  (links/rechts)"
			}
			line = style.Render(cursor+name) + mutedStyle.Render(tag)

		case rowSet:
			set := wo.Exercises[row.ex].Sets[row.set]
			line = style.Render(fmt.Sprintf("%s  %-20s %3d Wdh   RPE %d", cursor, set.Label, set.Reps, set.RPE))

		case rowFinisher:
			line = style.Render(cursor) + warningStyle.Render(fmt.Sprintf("Finisher (%s)", wo.Finisher.Type))

		case rowEntry:
			entry := wo.Finisher.Entries[row.entry]
			name := entry.Name
			if name == "" {
				name = "Unbenannt"
			}
			if wo.Finisher.Type != model.FinisherNormal {
				result := entry.Result
				if result == "" {
					result = "–"
				}
				line = style.Render(fmt.Sprintf("%s  %-20s %s  RPE %d", cursor, name, result, entry.RPE))
			} else {
				line = style.Render(cursor + "  " + name)
			}

		case rowEntrySet:
			set := wo.Finisher.Entries[row.entry].Sets[row.set]
			line = style.Render(fmt.Sprintf("%s    %-18s %3d Wdh   RPE %d", cursor, set.Label, set.Reps, set.RPE))
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: bearbeiten  n: übung  a: satz  d: löschen  m: modus"))
	rows = append(rows, mutedStyle.Render("  f: finisher  g: finisher-typ  t: workout-daten  s: speichern  esc: abbrechen"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
