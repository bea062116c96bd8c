package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	NextView key.Binding
	PrevView key.Binding
	Discover key.Binding
	Inst     key.Binding
	Markets  key.Binding
	Errs     key.Binding

	Search    key.Binding
	SortCycle key.Binding
	SortOrder key.Binding

	ToggleEnabled key.Binding
	Install       key.Binding
	Uninstall     key.Binding

	Confirm key.Binding
	Deny    key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	NextView: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("tab", "next view"),
	),
	PrevView: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Discover: key.NewBinding(key.WithKeys("1")),
	Inst:     key.NewBinding(key.WithKeys("2")),
	Markets:  key.NewBinding(key.WithKeys("3")),
	Errs:     key.NewBinding(key.WithKeys("4")),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SortCycle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	SortOrder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order"),
	),
	ToggleEnabled: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "enable/disable"),
	),
	Install: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "install"),
	),
	Uninstall: key.NewBinding(
		key.WithKeys("x", "d"),
		key.WithHelp("x", "uninstall"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "yes"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
