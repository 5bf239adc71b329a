package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// GameKeys holds the in-game bindings. Hotseat players share them; the
// game decides whose turn a key belongs to.
type GameKeys struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Drop    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Spawn   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeys returns the standard arcade bindings.
func DefaultGameKeys() GameKeys {
	return GameKeys{
		Up:      key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("↑/w", "forward")),
		Down:    key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓/s", "back")),
		Left:    key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("→/d", "right")),
		Drop:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "drop")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Spawn:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "drop obstacle")),
		Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drop, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Drop},
		{k.Pause, k.Restart, k.Spawn, k.Back, k.Quit},
	}
}

// KeyMapper turns key messages into game and menu actions.
type KeyMapper struct {
	keys GameKeys
	game []keyAction[core.Action]
	menu []keyAction[MenuAction]
}

type keyAction[A any] struct {
	binding key.Binding
	action  A
}

// NewKeyMapper uses DefaultGameKeys.
func NewKeyMapper() *KeyMapper {
	k := DefaultGameKeys()
	return &KeyMapper{
		keys: k,
		game: []keyAction[core.Action]{
			{k.Up, core.ActionUp},
			{k.Down, core.ActionDown},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.Drop, core.ActionDrop},
			{k.Back, core.ActionBack},
			{k.Pause, core.ActionPause},
			{k.Restart, core.ActionRestart},
			{k.Spawn, core.ActionSpawn},
		},
		menu: []keyAction[MenuAction]{
			{k.Quit, MenuActionQuit},
			{key.NewBinding(key.WithKeys("w", "up", "k")), MenuActionUp},
			{key.NewBinding(key.WithKeys("s", "down", "j")), MenuActionDown},
			{k.Drop, MenuActionSelect},
			{k.Back, MenuActionBack},
			{key.NewBinding(key.WithKeys("tab")), MenuActionScoreboard},
		},
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeys {
	return km.keys
}

// MapKey returns the game action for msg, ActionNone when unbound. The
// bool is set for quit keys, which the platform handles itself.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	return lookup(km.game, msg, core.ActionNone), false
}

func lookup[A any](table []keyAction[A], msg tea.KeyMsg, none A) A {
	for _, ka := range table {
		if key.Matches(msg, ka.binding) {
			return ka.action
		}
	}
	return none
}

// MenuAction is what a key does in the game picker.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction returns the menu action for msg. j and k move too.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return lookup(km.menu, msg, MenuActionNone)
}
