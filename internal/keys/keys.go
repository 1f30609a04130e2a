// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// NormalKeyMap defines the keybindings for normal mode.
type NormalKeyMap struct {
	// Navigation
	Left      key.Binding
	Down      key.Binding
	Up        key.Binding
	Right     key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	// Entering insert mode
	Insert     key.Binding
	Append     key.Binding
	AppendLine key.Binding
	InsertLine key.Binding
	OpenBelow  key.Binding

	// Structural edits
	DeleteAt     key.Binding
	DeleteBefore key.Binding
	Substitute   key.Binding

	// General
	Save key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultNormalKeyMap returns the default normal-mode keybindings.
func DefaultNormalKeyMap() NormalKeyMap {
	return NormalKeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$", "line end"),
		),

		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		AppendLine: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "append at line end"),
		),
		InsertLine: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "insert at line start"),
		),
		OpenBelow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open line below"),
		),

		DeleteAt: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete char"),
		),
		DeleteBefore: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "delete before"),
		),
		Substitute: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "substitute"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status-line help.
func (k NormalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.DeleteAt, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k NormalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right, k.LineStart, k.LineEnd},       // Navigation
		{k.Insert, k.Append, k.AppendLine, k.InsertLine, k.OpenBelow}, // Insert
		{k.DeleteAt, k.DeleteBefore, k.Substitute},                    // Edits
		{k.Save, k.Help, k.Quit},                                      // General
	}
}

// InsertKeyMap defines the keybindings for insert mode. Any other printable
// key is typed.
type InsertKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	Backspace key.Binding
	Delete    key.Binding
	Enter     key.Binding

	// Force edits skip delimiter balancing
	ForceBackspace key.Binding
	ForceDelete    key.Binding

	Escape key.Binding
	Save   key.Binding
	Quit   key.Binding
}

// DefaultInsertKeyMap returns the default insert-mode keybindings.
func DefaultInsertKeyMap() InsertKeyMap {
	return InsertKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete before"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete char"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		ForceBackspace: key.NewBinding(
			key.WithKeys("alt+backspace"),
			key.WithHelp("alt+backspace", "force delete before"),
		),
		ForceDelete: key.NewBinding(
			key.WithKeys("alt+delete"),
			key.WithHelp("alt+del", "force delete char"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status-line help.
func (k InsertKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Escape, k.ForceBackspace, k.Save}
}

// FullHelp returns keybindings for the full help view.
func (k InsertKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Backspace, k.Delete, k.Enter},
		{k.ForceBackspace, k.ForceDelete},
		{k.Escape, k.Save, k.Quit},
	}
}
