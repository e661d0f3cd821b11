package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState
	showHelp   bool
	accent     string

	dashboard dashboardModel
	editor    editorModel
	history   historyModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewDashboard,
		accent:     accentColors[0],
		dashboard:  newDashboardModel(s),
		editor:     newEditorModel(s),
		history:    newHistoryModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.loadAccent(),
	)
}

func (a App) loadAccent() tea.Cmd {
	return func() tea.Msg {
		accent, _ := a.store.Setting(accentColorKey)
		if accent == "" {
			accent = accentColors[0]
		}
		return accentChangedMsg{color: accent}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.editor.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// If a child view is capturing input (form, confirm, editor
		// session), delegate first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			return a.openEditorTab()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			if a.activeView == viewEditor {
				return a.openEditorTab()
			}
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case openEditorMsg:
		a.activeView = viewEditor
		a.status = ""
		var cmd tea.Cmd
		a.editor, cmd = a.editor.open(msg)
		return a, cmd

	case editorClosedMsg:
		switch {
		case msg.saved:
			a.activeView = viewHistory
			a.status = "Workout gespeichert"
		case msg.wasEdit:
			// A cancelled edit goes back to where it started: the detail.
			a.activeView = viewHistory
			a.history.viewingDetail = true
			a.status = "Änderungen verworfen"
		default:
			a.activeView = viewDashboard
			a.status = "Entwurf verworfen"
		}
		return a, tea.Batch(a.history.refresh(), a.dashboard.loadData())

	case workoutDeletedMsg:
		a.status = "Workout gelöscht"
		return a, tea.Batch(a.history.refresh(), a.dashboard.loadData())

	case draftDiscardedMsg:
		a.status = "Entwurf verworfen"
		return a, a.dashboard.loadData()

	case exportDoneMsg:
		a.status = "Exportiert nach " + msg.path
		return a, nil

	case importDoneMsg:
		a.status = "Daten importiert"
		return a, tea.Batch(a.dashboard.loadData(), a.history.refresh(), a.settings.refresh())

	case accentChangedMsg:
		a.accent = msg.color
		a.settings.accent = msg.color
		return a, nil
	}

	return a.updateActiveView(msg)
}

// openEditorTab activates the editor view. When no session is running it
// resumes a pending draft, or starts a fresh workout with the first
// configured type.
func (a App) openEditorTab() (tea.Model, tea.Cmd) {
	if a.editor.active {
		a.activeView = viewEditor
		return a, nil
	}
	return a, func() tea.Msg {
		d, _ := a.store.Draft()
		if d != nil {
			return openEditorMsg{workout: d.Workout.Clone(), isEdit: d.IsEdit, editID: d.EditID}
		}
		typeName := ""
		if types, _ := a.store.WorkoutTypes(); len(types) > 0 {
			typeName = types[0].Name
		}
		return openEditorMsg{workout: model.NewWorkout(typeName)}
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewEditor:
		a.editor, cmd = a.editor.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

// isCapturing reports whether the active view owns the whole keyboard.
func (a App) isCapturing() bool {
	switch a.activeView {
	case viewEditor:
		return a.editor.active
	case viewHistory:
		return a.history.confirmDelete
	case viewSettings:
		return a.settings.formActive || a.settings.confirmDelete || a.settings.confirmImport
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewHistory:
		return a.history.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Laden..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewEditor:
		content = a.editor.view()
	case viewHistory:
		content = a.history.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	accent := lipgloss.Color(a.accent)
	activeTab := activeTabStyle.Foreground(accent).BorderForeground(accent)

	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTab.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Track It")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	autosave := ""
	if a.editor.active {
		autosave = successStyle.Render(" ● Entwurf wird gesichert")
		if a.editor.manager != nil && a.editor.manager.Err() != nil {
			autosave = errorStyle.Render(" ● Entwurf-Sicherung fehlgeschlagen")
		}
	}

	left := footerStyle.Render(helpView)
	right := autosave + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
