package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

func menuKey(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuCursorClamps(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = menuKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, expected 0", m.cursor)
	}

	for range len(m.items) + 3 {
		m = menuKey(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d after scrolling past the end, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuWithOnline(t *testing.T) {
	local := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	online := local.WithOnline()

	if len(online.items) != len(local.items)+1 {
		t.Fatalf("len(items) = %d, expected %d", len(online.items), len(local.items)+1)
	}
	last := online.items[len(online.items)-1]
	if last.GameID != OnlineGameID || last.Mode != multiplayer.MatchModeOnlinePvP {
		t.Errorf("last item = %+v, expected the online lobby", last)
	}
	if !strings.Contains(online.View(), "Connect Four Online") {
		t.Error("View() should list the online entry")
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	sel := menuKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel.Selected() == nil || sel.Selected().GameID != m.items[0].GameID {
		t.Errorf("Selected() = %v, expected %s", sel.Selected(), m.items[0].GameID)
	}

	sb := menuKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if !sb.WantsScoreboard() || sb.Selected() != nil {
		t.Error("tab should request the scoreboard without selecting a game")
	}
}

func TestWithBestNilStore(t *testing.T) {
	items := withBest([]MenuItem{{GameID: "maze", Mode: multiplayer.MatchModeSolo}}, nil)
	if items[0].Best != 0 {
		t.Errorf("Best = %d, expected 0 without a store", items[0].Best)
	}
}
