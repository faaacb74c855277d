package viewer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the viewer
type KeyMap struct {
	Quit       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Expand     key.Binding
	Collapse   key.Binding
	Toggle     key.Binding
	Filter     key.Binding
	Escape     key.Binding
	NarrowTree key.Binding
	WidenTree  key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Expand: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "collapse"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		NarrowTree: key.NewBinding(
			key.WithKeys("[", "ctrl+left"),
			key.WithHelp("[", "narrow tree"),
		),
		WidenTree: key.NewBinding(
			key.WithKeys("]", "ctrl+right"),
			key.WithHelp("]", "widen tree"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Select, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Expand, k.Collapse, k.Toggle},
		{k.Filter, k.Escape},
		{k.FocusNext, k.FocusPrev, k.NarrowTree, k.WidenTree},
		{k.Help, k.Quit},
	}
}
