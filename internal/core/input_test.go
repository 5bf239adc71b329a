package core

import "testing"

func TestActionNames(t *testing.T) {
	for a := ActionNone; a < actionCount; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v", a.String(), got, ok, a)
		}
	}

	tests := []struct {
		name     string
		expected Action
		ok       bool
	}{
		{"drop", ActionDrop, true},
		{"LEFT", ActionLeft, true},
		{"spawn", ActionSpawn, true},
		{"jump", ActionNone, false},
		{"", ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.name)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v, %v", tt.name, got, ok, tt.expected, tt.ok)
		}
	}

	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionDrop)
	if !f.Has(ActionLeft) || !f.Has(ActionDrop) || f.Has(ActionRight) {
		t.Errorf("FrameOf(Left, Drop) has the wrong actions: %+v", f)
	}

	// frames are values
	g := f
	g.Set(ActionRight)
	if f.Has(ActionRight) {
		t.Error("setting on a copy changed the original")
	}

	f.Set(ActionNone)
	f.Set(Action(-3))
	f.Set(Action(64))
	if f.Has(ActionNone) || f.Has(Action(64)) {
		t.Error("invalid actions should be ignored")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.SetPlayer(Player2, FrameOf(ActionDrop))
	m.SetPlayer(PlayerNone, FrameOf(ActionLeft))

	if !m.Player(Player2).Has(ActionDrop) {
		t.Error("Player2 should have Drop")
	}
	if !m.Player(Player1).Empty() {
		t.Error("Player1 should be empty")
	}
	if !m.Player(PlayerNone).Empty() || !m.Player(PlayerID(7)).Empty() {
		t.Error("unknown seats should read as empty")
	}
}
