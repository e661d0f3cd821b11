package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/trackit/internal/export"
	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/stats"
	"github.com/sadopc/trackit/internal/store"
)

type historyModel struct {
	store  *store.Store
	width  int
	height int

	workouts []*model.Workout
	cursor   int

	viewingDetail bool
	confirmDelete bool
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{store: s}
}

func (h *historyModel) setSize(w, hh int) {
	h.width = w
	h.height = hh
}

type historyDataMsg struct {
	workouts []*model.Workout
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		workouts, _ := h.store.Workouts()
		return historyDataMsg{workouts: workouts}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.workouts = msg.workouts
		if h.cursor >= len(h.workouts) {
			h.cursor = max(0, len(h.workouts)-1)
		}
		if len(h.workouts) == 0 {
			h.viewingDetail = false
		}
		return h, nil

	case tea.KeyMsg:
		if h.confirmDelete {
			return h.updateConfirm(msg)
		}
		if h.viewingDetail {
			return h.updateDetail(msg)
		}
		return h.updateList(msg)
	}
	return h, nil
}

func (h historyModel) updateList(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, keys.Down):
		if h.cursor < len(h.workouts)-1 {
			h.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(h.workouts) > 0 {
			h.viewingDetail = true
		}
	case key.Matches(msg, keys.Edit):
		if len(h.workouts) > 0 {
			return h, h.editSelected()
		}
	case key.Matches(msg, keys.New):
		return h, func() tea.Msg { return openEditorMsg{workout: model.NewWorkout("")} }
	case key.Matches(msg, keys.Delete):
		if len(h.workouts) > 0 {
			h.confirmDelete = true
		}
	}
	return h, nil
}

func (h historyModel) updateDetail(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		h.viewingDetail = false
	case key.Matches(msg, keys.Edit):
		return h, h.editSelected()
	case key.Matches(msg, keys.Markdown):
		return h, h.exportMarkdown()
	case key.Matches(msg, keys.Delete):
		h.confirmDelete = true
	}
	return h, nil
}

func (h historyModel) updateConfirm(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		h.confirmDelete = false
		h.viewingDetail = false
		return h, h.deleteSelected()
	case key.Matches(msg, keys.Back):
		h.confirmDelete = false
	}
	return h, nil
}

func (h historyModel) selected() *model.Workout {
	if h.cursor >= len(h.workouts) {
		return nil
	}
	return h.workouts[h.cursor]
}

// editSelected opens the editor on a copy and drops an immediate draft so
// a crash mid-edit still resumes into the right workout.
func (h historyModel) editSelected() tea.Cmd {
	w := h.selected()
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		return openEditorMsg{workout: w.Clone(), isEdit: true, editID: w.WorkoutID}
	}
}

func (h historyModel) deleteSelected() tea.Cmd {
	w := h.selected()
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if err := h.store.DeleteWorkout(w.WorkoutID); err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return workoutDeletedMsg{}
	}
}

func (h historyModel) exportMarkdown() tea.Cmd {
	w := h.selected()
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		path, err := export.WriteMarkdown(w, home)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Markdown-Fehler: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (h historyModel) view() string {
	if h.confirmDelete {
		return h.renderConfirm()
	}
	if h.viewingDetail {
		return h.renderDetail()
	}
	return h.renderList()
}

func (h historyModel) renderList() string {
	w := h.width - 4
	title := titleStyle.Render("Verlauf")

	if len(h.workouts) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Noch keine Workouts gespeichert."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-28s %-10s %-6s %s", "Datum", "Name", "Umfang", "Ø RPE", ""))
	rows = append(rows, header)

	for i, wo := range h.workouts {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-12s %-28s %-10s %-6s",
			cursor, model.FormatDate(wo.Date), workoutTitle(wo),
			pluralSets(wo.SetCount()), formatAvgRPE(stats.WorkoutAvgRPE(wo))))
		if wo.Finisher != nil {
			row += warningStyle.Render(" Finisher")
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: details  e: bearbeiten  d: löschen  n: neu"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h historyModel) renderDetail() string {
	w := h.width - 4
	wo := h.selected()
	if wo == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Kein Workout ausgewählt"))
	}

	title := titleStyle.Render(workoutTitle(wo))
	meta := mutedStyle.Render(fmt.Sprintf("%s · %s · Ø RPE %s",
		wo.Type, model.FormatDate(wo.Date), formatAvgRPE(stats.WorkoutAvgRPE(wo))))

	var rows []string
	rows = append(rows, title, meta, "")

	for _, ex := range wo.Exercises {
		name := ex.Name
		if name == "" {
			name = "Unbenannte Übung"
		}
		modeTag := ""
		if ex.Mode == model.ModeLeftRight {
			modeTag = mutedStyle.Render("  (links/rechts)")
		}
		rows = append(rows, highlightStyle.Render(name)+modeTag)
		for _, set := range ex.Sets {
			note := ""
			if set.Note != "" {
				note = mutedStyle.Render("  " + set.Note)
			}
			rows = append(rows, fmt.Sprintf("  %-20s %3d Wdh   RPE %d%s", set.Label, set.Reps, set.RPE, note))
		}
		rows = append(rows, "")
	}

	if wo.Finisher != nil {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("Finisher (%s)", wo.Finisher.Type)))
		for _, entry := range wo.Finisher.Entries {
			name := entry.Name
			if name == "" {
				name = "Unbenannt"
			}
			rows = append(rows, highlightStyle.Render("  "+name))
			if wo.Finisher.Type == model.FinisherNormal {
				for _, set := range entry.Sets {
					rows = append(rows, fmt.Sprintf("    %-18s %3d Wdh   RPE %d", set.Label, set.Reps, set.RPE))
				}
			} else {
				result := entry.Result
				if result == "" {
					result = "–"
				}
				rows = append(rows, fmt.Sprintf("    Ergebnis: %s   RPE %d", result, entry.RPE))
				if entry.Note != "" {
					rows = append(rows, mutedStyle.Render("    "+entry.Note))
				}
			}
		}
		rows = append(rows, "")
	}

	rows = append(rows, mutedStyle.Render("  e: bearbeiten  m: markdown  d: löschen  esc: zurück"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h historyModel) renderConfirm() string {
	w := h.width - 4
	wo := h.selected()
	name := "dieses Workout"
	if wo != nil {
		name = workoutTitle(wo)
	}

	title := errorStyle.Render("Workout löschen?")
	line := fmt.Sprintf("%s wird dauerhaft gelöscht.", name)
	hint := mutedStyle.Render("enter: löschen  esc: abbrechen")

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", line, "", hint),
	)
}
