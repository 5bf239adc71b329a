package core

import "strings"

// Action is a platform-independent intent. The terminal maps keys to
// actions and the web protocol sends them by name.
type Action int

const (
	ActionNone Action = iota
	ActionUp          // walk forward in the maze
	ActionDown        // walk backward in the maze
	ActionLeft        // move the column cursor, or turn
	ActionRight
	ActionDrop // drop a disc in the cursor column
	ActionBack // leave to the menu
	ActionRestart
	ActionQuit
	ActionPause
	ActionSpawn // drop an obstacle in the platformer

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Drop", "Back", "Restart", "Quit", "Pause", "Spawn",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of String, ignoring case. Unknown names give
// ActionNone and false.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(a), true
		}
	}
	return ActionNone, false
}

// InputFrame is the set of actions one player triggered during a tick.
// The zero value is empty and frames copy by value.
type InputFrame struct {
	bits uint32
}

func NewInputFrame() InputFrame { return InputFrame{} }

// FrameOf returns a frame with actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set adds a. ActionNone and out-of-range values are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool { return f.bits == 0 }

func (f *InputFrame) Clear() { f.bits = 0 }

// MultiInputFrame carries one tick of input for both seats of an online
// match.
type MultiInputFrame struct {
	seats [2]InputFrame
}

func NewMultiInputFrame() MultiInputFrame { return MultiInputFrame{} }

// Player returns the frame for id; an empty frame for PlayerNone.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if id != Player1 && id != Player2 {
		return InputFrame{}
	}
	return m.seats[id-1]
}

// SetPlayer replaces the frame for id. Other ids are ignored.
func (m *MultiInputFrame) SetPlayer(id PlayerID, f InputFrame) {
	if id == Player1 || id == Player2 {
		m.seats[id-1] = f
	}
}
