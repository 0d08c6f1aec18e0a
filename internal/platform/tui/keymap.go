package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-collector/internal/core"
)

// KeyMap defines the key bindings shared by all screens.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Run         key.Binding
	Skip        key.Binding
	Reset       key.Binding
	NextProgram key.Binding
	PrevProgram key.Binding
	History     key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Run: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "run"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip replay"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		NextProgram: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevProgram: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
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

// ShortHelp returns key bindings for the play screen's short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.NextProgram, k.Reset, k.History, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Skip, k.Reset},
		{k.NextProgram, k.PrevProgram, k.History},
		{k.Back, k.Quit},
	}
}

// menuHelp is the binding set shown under the level picker.
type menuHelp struct{ KeyMap }

func (k menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

func (k menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyMapper translates Bubble Tea key messages to UI actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// MapPlayKey translates a key on the play screen.
// "s" means skip here; on the menu it moves the cursor down.
func (km *KeyMapper) MapPlayKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Run):
		return core.ActionRun
	case key.Matches(msg, k.Skip):
		return core.ActionSkip
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.NextProgram):
		return core.ActionNextProgram
	case key.Matches(msg, k.PrevProgram):
		return core.ActionPrevProgram
	case key.Matches(msg, k.History):
		return core.ActionHistory
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MapMenuKey translates a key on list screens (level picker, history).
func (km *KeyMapper) MapMenuKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Select):
		return core.ActionConfirm
	case key.Matches(msg, k.NextProgram):
		return core.ActionNextProgram
	case key.Matches(msg, k.PrevProgram):
		return core.ActionPrevProgram
	case key.Matches(msg, k.History):
		return core.ActionHistory
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}
