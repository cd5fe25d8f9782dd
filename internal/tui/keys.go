package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	HalfPgUp   key.Binding
	HalfPgDown key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Back       key.Binding
	ToggleSort key.Binding
	Rescan     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	HalfPgUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	HalfPgDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first entry"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last entry"),
	),
	Open: key.NewBinding(
		key.WithKeys("o", "l", "right", "enter"),
		key.WithHelp("o/enter", "enter directory"),
	),
	Back: key.NewBinding(
		key.WithKeys("u", "h", "left", "backspace"),
		key.WithHelp("u/h", "parent directory"),
	),
	ToggleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle size order"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
