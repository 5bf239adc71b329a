package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

func TestScoreboardCyclesGames(t *testing.T) {
	m := NewScoreboardModel(nil, 120, 30)
	n := len(m.games)
	if m.games[n-1].ID != OnlineGameID {
		t.Fatalf("last game = %q, expected %q", m.games[n-1].ID, OnlineGameID)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.index != n-1 {
		t.Errorf("index = %d after prev from the first game, expected %d", m.index, n-1)
	}
	if !strings.Contains(m.View(), "MATCH HISTORY") {
		t.Error("the online entry should show match history")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.index != 0 {
		t.Errorf("index = %d after wrapping forward, expected 0", m.index)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	back := next.(ScoreboardModel)
	if !back.IsGoingBack() || back.IsQuitting() || cmd == nil {
		t.Error("esc should go back to the menu")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMatchResultText(t *testing.T) {
	tests := []struct {
		rec      storage.MatchRecord
		expected string
	}{
		{storage.MatchRecord{Player1: "ann", Player2: "bo", Winner: 1}, "ann won"},
		{storage.MatchRecord{Player1: "ann", Player2: "bo", Winner: 2}, "bo won"},
		{storage.MatchRecord{Draw: true}, "Draw"},
		{storage.MatchRecord{EndReason: "Match timed out"}, "Match timed out"},
	}
	for _, tt := range tests {
		if got := matchResultText(tt.rec); got != tt.expected {
			t.Errorf("matchResultText(%+v) = %q, expected %q", tt.rec, got, tt.expected)
		}
	}
}
