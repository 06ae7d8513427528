package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the tree screen
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding // Launch entry or toggle folder
	Escape   key.Binding

	AddFolder key.Binding
	AddEntry  key.Binding
	Rename    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Sort      key.Binding
	Search    key.Binding

	Mark       key.Binding // Mark node as move source
	MoveBefore key.Binding // Move marked node before cursor
	MoveInto   key.Binding // Move marked node into cursor folder

	CopyPath key.Binding
	Preview  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
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
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch / toggle"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		AddFolder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "new folder"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new entry"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort folder"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark to move"),
		),
		MoveBefore: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "move before"),
		),
		MoveInto: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "move into"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Preview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view document"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.AddFolder, k.AddEntry, k.Search, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Editing
		{k.AddFolder, k.AddEntry, k.Rename, k.Edit, k.Delete, k.Sort},
		// Moving
		{k.Mark, k.MoveBefore, k.MoveInto},
		// General
		{k.Enter, k.Search, k.CopyPath, k.Preview, k.Help, k.Escape, k.Quit},
	}
}
