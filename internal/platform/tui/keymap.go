package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// EditorKeyMap defines the bindings while a session is stopped.
type EditorKeyMap struct {
	Run         key.Binding
	NextEntity  key.Binding
	PrevEntity  key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextPalette key.Binding
	PrevPalette key.Binding
	Add         key.Binding
	Duplicate   key.Binding
	Remove      key.Binding
	Reset       key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.NextEntity, k.Add, k.Duplicate, k.Remove, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.NextEntity, k.PrevEntity},
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextPalette, k.PrevPalette, k.Add},
		{k.Duplicate, k.Remove, k.Reset},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultEditorKeyMap returns default editor bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Run: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter/p", "play"),
		),
		NextEntity: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next object"),
		),
		PrevEntity: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev object"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "move right"),
		),
		NextPalette: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next palette"),
		),
		PrevPalette: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev palette"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "duplicate"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x/del", "remove"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset template"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PlayKeyMap defines the bindings while a session is running. Every other
// key is forwarded to the simulation.
type PlayKeyMap struct {
	Stop key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Stop, k.Quit}}
}

// DefaultPlayKeyMap returns default play bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Stop: key.NewBinding(
			key.WithKeys("enter", "p", "esc"),
			key.WithHelp("enter/p/esc", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerKeyMap defines the bindings of the template picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPickerKeyMap returns default picker bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best runs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
