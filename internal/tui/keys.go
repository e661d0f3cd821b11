package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New      key.Binding
	AddSet   key.Binding
	Delete   key.Binding
	Edit     key.Binding
	Mode     key.Binding
	Finisher key.Binding
	Cycle    key.Binding
	Meta     key.Binding
	Save     key.Binding
	Rename   key.Binding
	Color    key.Binding
	Export   key.Binding
	Import   key.Binding
	Markdown key.Binding
	Discard  key.Binding
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Tab4     key.Binding
	Tab      key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "neu"),
	),
	AddSet: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "satz hinzufügen"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "löschen"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "bearbeiten"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "modus wechseln"),
	),
	Finisher: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "finisher an/aus"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "finisher-typ"),
	),
	Meta: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "workout-daten"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "speichern"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "umbenennen"),
	),
	Color: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "akzentfarbe"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Markdown: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "markdown"),
	),
	Discard: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "entwurf verwerfen"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "neu"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "verlauf"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "einstellungen"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "nächste ansicht"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "hilfe"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "auswählen"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "zurück"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "hoch"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "runter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "beenden"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.AddSet, k.Edit, k.Delete},
		{k.Mode, k.Finisher, k.Cycle, k.Save},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
