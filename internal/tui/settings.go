package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/trackit/internal/export"
	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/store"
)

const accentColorKey = "accent_color"

type settingsFormKind int

const (
	settingsFormNone settingsFormKind = iota
	settingsFormNewType
	settingsFormRename
	settingsFormColor
	settingsFormImport
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	types  []model.WorkoutType
	accent string
	cursor int

	confirmDelete bool
	confirmImport bool

	formActive bool
	form       *huh.Form
	formKind   settingsFormKind

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string
	formPath  *string

	renamingID string
	importPath string
}

func newSettingsModel(s *store.Store) settingsModel {
	name, color, path := "", accentColors[0], ""
	return settingsModel{
		store:     s,
		accent:    accentColors[0],
		formName:  &name,
		formColor: &color,
		formPath:  &path,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	types  []model.WorkoutType
	accent string
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		types, _ := s.store.WorkoutTypes()
		accent, _ := s.store.Setting(accentColorKey)
		if accent == "" {
			accent = accentColors[0]
		}
		return settingsDataMsg{types: types, accent: accent}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.types = msg.types
		s.accent = msg.accent
		if s.cursor >= len(s.types) {
			s.cursor = max(0, len(s.types)-1)
		}
		return s, nil

	case tea.KeyMsg:
		if s.confirmDelete {
			return s.updateConfirmDelete(msg)
		}
		if s.confirmImport {
			return s.updateConfirmImport(msg)
		}
		return s.updateKeys(msg)
	}
	return s, nil
}

func (s settingsModel) updateKeys(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < len(s.types)-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.New):
		return s.showTypeForm(settingsFormNewType)
	case key.Matches(msg, keys.Rename):
		if len(s.types) > 0 {
			return s.showTypeForm(settingsFormRename)
		}
	case key.Matches(msg, keys.Delete):
		if len(s.types) > 0 {
			s.confirmDelete = true
		}
	case key.Matches(msg, keys.Color):
		return s.showColorForm()
	case key.Matches(msg, keys.Export):
		return s, s.exportSnapshot()
	case key.Matches(msg, keys.Import):
		return s.showImportForm()
	}
	return s, nil
}

func (s settingsModel) updateConfirmDelete(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		s.confirmDelete = false
		if s.cursor < len(s.types) {
			t := s.types[s.cursor]
			return s, func() tea.Msg {
				if err := s.store.DeleteWorkoutType(t.ID); err != nil {
					return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
				}
				return statusMsg{text: fmt.Sprintf("Typ %q gelöscht", t.Name)}
			}
		}
	case key.Matches(msg, keys.Back):
		s.confirmDelete = false
	}
	return s, nil
}

func (s settingsModel) updateConfirmImport(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		s.confirmImport = false
		return s, s.runImport(s.importPath)
	case key.Matches(msg, keys.Back):
		s.confirmImport = false
	}
	return s, nil
}

// --- Forms ---

func (s settingsModel) showTypeForm(kind settingsFormKind) (settingsModel, tea.Cmd) {
	*s.formName = ""
	if kind == settingsFormRename {
		t := s.types[s.cursor]
		*s.formName = t.Name
		s.renamingID = t.ID
	}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(s.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)
	s.formKind = kind
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showColorForm() (settingsModel, tea.Cmd) {
	*s.formColor = s.accent
	options := make([]huh.Option[string], len(accentColors))
	for i, c := range accentColors {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("● " + c)
		options[i] = huh.NewOption(label, c)
	}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Akzentfarbe").Options(options...).Value(s.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)
	s.formKind = settingsFormColor
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*s.formPath = ""
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pfad zur Export-Datei").Value(s.formPath),
		),
	).WithShowHelp(true).WithShowErrors(true)
	s.formKind = settingsFormImport
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s.applyForm()
	}

	return s, cmd
}

func (s settingsModel) applyForm() (settingsModel, tea.Cmd) {
	switch s.formKind {
	case settingsFormNewType:
		name := strings.TrimSpace(*s.formName)
		if name == "" {
			return s, nil
		}
		return s, func() tea.Msg {
			if err := s.store.SaveWorkoutType(model.NewWorkoutType(name)); err != nil {
				return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
			}
			return statusMsg{text: fmt.Sprintf("Typ %q angelegt", name)}
		}

	case settingsFormRename:
		name := strings.TrimSpace(*s.formName)
		id := s.renamingID
		if name == "" || id == "" {
			return s, nil
		}
		return s, func() tea.Msg {
			if err := s.store.SaveWorkoutType(model.WorkoutType{ID: id, Name: name}); err != nil {
				return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
			}
			return statusMsg{text: fmt.Sprintf("Typ umbenannt in %q", name)}
		}

	case settingsFormColor:
		color := *s.formColor
		return s, func() tea.Msg {
			if err := s.store.SetSetting(accentColorKey, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
			}
			return accentChangedMsg{color: color}
		}

	case settingsFormImport:
		path := strings.TrimSpace(*s.formPath)
		if path == "" {
			return s, nil
		}
		s.importPath = path
		s.confirmImport = true
		return s, nil
	}
	return s, nil
}

// --- Export / import ---

func (s settingsModel) exportSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := s.store.Export()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export-Fehler: %v", err), isError: true}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		path, err := export.WriteSnapshot(snap, home)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export-Fehler: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (s settingsModel) runImport(path string) tea.Cmd {
	return func() tea.Msg {
		snap, err := export.ReadSnapshot(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import-Fehler: %v", err), isError: true}
		}
		if err := s.store.Import(snap); err != nil {
			return statusMsg{text: fmt.Sprintf("Import-Fehler: %v", err), isError: true}
		}
		return importDoneMsg{}
	}
}

// --- View ---

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render(s.formTitle())
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	if s.confirmDelete {
		return s.renderConfirmDelete(w)
	}
	if s.confirmImport {
		return s.renderConfirmImport(w)
	}

	typesPanel := s.renderTypes(w)
	generalPanel := s.renderGeneral(w)
	return lipgloss.JoinVertical(lipgloss.Left, typesPanel, generalPanel)
}

func (s settingsModel) formTitle() string {
	switch s.formKind {
	case settingsFormNewType:
		return "Neuer Workout-Typ"
	case settingsFormRename:
		return "Typ umbenennen"
	case settingsFormColor:
		return "Akzentfarbe"
	case settingsFormImport:
		return "Daten importieren"
	}
	return "Einstellungen"
}

func (s settingsModel) renderTypes(w int) string {
	title := titleStyle.Render("Workout-Typen")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(s.types) == 0 {
		rows = append(rows, mutedStyle.Render("Keine Typen. Drücke n für einen neuen."))
	}
	for i, t := range s.types {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+t.Name))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: neu  r: umbenennen  d: löschen"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (s settingsModel) renderGeneral(w int) string {
	title := titleStyle.Render("Allgemein")
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.accent)).Render("●")
	accentLine := fmt.Sprintf("  %-16s %s %s", "Akzentfarbe", dot, s.accent)

	rows := []string{
		title,
		"",
		accentLine,
		"",
		mutedStyle.Render("  c: akzentfarbe  x: daten exportieren  i: daten importieren"),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (s settingsModel) renderConfirmDelete(w int) string {
	name := ""
	if s.cursor < len(s.types) {
		name = s.types[s.cursor].Name
	}
	title := errorStyle.Render("Workout-Typ löschen?")
	line := fmt.Sprintf("%q wird gelöscht. Bestehende Workouts bleiben unverändert.", name)
	hint := mutedStyle.Render("enter: löschen  esc: abbrechen")
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", line, "", hint),
	)
}

func (s settingsModel) renderConfirmImport(w int) string {
	title := errorStyle.Render("Daten importieren?")
	line := "Alle vorhandenen Workouts und Typen werden ersetzt."
	pathLine := mutedStyle.Render(s.importPath)
	hint := mutedStyle.Render("enter: importieren  esc: abbrechen")
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", line, pathLine, "", hint),
	)
}
