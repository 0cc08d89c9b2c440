package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the preview key bindings.
type KeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Activate     key.Binding
	Toggle       key.Binding
	Filter       key.Binding
	Sort         key.Binding
	ColumnPrev   key.Binding
	ColumnNext   key.Binding
	SelectAll    key.Binding
	ToggleColumn key.Binding
	Close        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "large step up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "large step down")),
		Activate:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Toggle:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		ColumnPrev:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "previous column")),
		ColumnNext:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "next column")),
		SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		ToggleColumn: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "hide column")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate, k.Toggle, k.Close},
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
		{k.Filter, k.Sort, k.ColumnPrev, k.ColumnNext, k.SelectAll, k.ToggleColumn},
		{k.Help, k.Quit},
	}
}
