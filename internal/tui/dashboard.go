package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/stats"
	"github.com/sadopc/trackit/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	workouts []*model.Workout
	types    []model.WorkoutType
	draft    *model.Draft
	summary  stats.Summary

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	workouts []*model.Workout
	types    []model.WorkoutType
	draft    *model.Draft
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		workouts, _ := d.store.Workouts()
		types, _ := d.store.WorkoutTypes()
		draft, _ := d.store.Draft()
		return dashboardDataMsg{workouts: workouts, types: types, draft: draft}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.workouts = msg.workouts
		d.types = msg.types
		d.draft = msg.draft
		d.summary = stats.Summarize(d.workouts, time.Now())
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			return d, d.newWorkout()

		case key.Matches(msg, keys.Enter):
			if d.draft != nil {
				return d, d.resumeDraft()
			}

		case key.Matches(msg, keys.Discard):
			if d.draft != nil {
				return d, d.discardDraft()
			}
		}
	}
	return d, nil
}

// newWorkout opens the editor with a fresh workout preselecting the first
// configured type.
func (d dashboardModel) newWorkout() tea.Cmd {
	typeName := ""
	if len(d.types) > 0 {
		typeName = d.types[0].Name
	}
	return func() tea.Msg {
		return openEditorMsg{workout: model.NewWorkout(typeName)}
	}
}

func (d dashboardModel) resumeDraft() tea.Cmd {
	draft := d.draft
	return func() tea.Msg {
		return openEditorMsg{
			workout: draft.Workout.Clone(),
			isEdit:  draft.IsEdit,
			editID:  draft.EditID,
		}
	}
}

func (d dashboardModel) discardDraft() tea.Cmd {
	return func() tea.Msg {
		if err := d.store.ClearDraft(); err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return draftDiscardedMsg{}
	}
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, wk := range d.summary.LastWeeks {
		style := barStyle
		if wk.Count == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: wk.Label,
			Values: []barchart.BarValue{
				{Name: wk.Label, Value: float64(wk.Count), Style: style},
			},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal zu klein"
	}

	contentWidth := d.width - 4

	var sections []string
	if d.draft != nil {
		sections = append(sections, d.renderDraftBanner(contentWidth))
	}
	sections = append(sections, d.renderSummaryPanel(contentWidth))
	sections = append(sections, d.renderChartPanel(contentWidth))
	sections = append(sections, d.renderRecentPanel(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d dashboardModel) renderDraftBanner(w int) string {
	title := warningStyle.Render("Nicht gespeichertes Workout")
	what := workoutTitle(&d.draft.Workout)
	if d.draft.IsEdit {
		what += " (Bearbeitung)"
	}
	line := fmt.Sprintf("%s – zuletzt gesichert %s", what, model.FormatDateTime(d.draft.SavedAt))
	hint := mutedStyle.Render("enter: fortsetzen  x: verwerfen")

	return bannerStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, line, hint),
	)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	title := titleStyle.Render("Statistik")

	statLine := fmt.Sprintf("  %-18s %s", "Workouts gesamt", highlightStyle.Render(fmt.Sprintf("%d", d.summary.Total)))
	weekLine := fmt.Sprintf("  %-18s %s", "Diese Woche", highlightStyle.Render(fmt.Sprintf("%d", d.summary.ThisWeek)))
	rpeLine := fmt.Sprintf("  %-18s %s", "Ø RPE", highlightStyle.Render(formatAvgRPE(d.summary.AvgRPE, d.summary.AvgRPE > 0)))

	rows := []string{title, "", statLine, weekLine, rpeLine}

	if len(d.summary.ByType) > 0 {
		rows = append(rows, "", mutedStyle.Render("  Nach Typ"))
		for i, tc := range d.summary.ByType {
			dot := lipgloss.NewStyle().
				Foreground(lipgloss.Color(accentColors[i%len(accentColors)])).
				Render("●")
			rows = append(rows, fmt.Sprintf("  %s %-16s %d", dot, tc.Type, tc.Count))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Workouts pro Woche")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", d.chart.View()),
	)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Letzte Workouts")

	if len(d.workouts) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Noch keine Workouts. Drücke n für ein neues."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for i, wo := range d.workouts {
		if i >= 5 {
			break
		}
		avg := mutedStyle.Render("RPE " + formatAvgRPE(stats.WorkoutAvgRPE(wo)))
		row := fmt.Sprintf("  %s  %-28s %-10s %s",
			model.FormatDate(wo.Date), workoutTitle(wo), pluralSets(wo.SetCount()), avg)
		rows = append(rows, row)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: neues Workout  3: Verlauf"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
