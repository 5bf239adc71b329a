package multiplayer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

type countSnapshot struct {
	Drops int
}

func (countSnapshot) IsGameSnapshot() {}

// dropGame ends after a fixed number of drops; the last dropper wins.
type dropGame struct {
	limit int
	drops int
	last  core.PlayerID
}

func (g *dropGame) Reset(core.RuntimeConfig) { g.drops, g.last = 0, core.PlayerNone }

func (g *dropGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		if in.Player(id).Has(core.ActionDrop) && g.drops < g.limit {
			g.drops++
			g.last = id
		}
	}
	return core.StepResult{State: core.GameState{GameOver: g.IsGameOver()}}
}

func (g *dropGame) Snapshot() GameSnapshot { return countSnapshot{Drops: g.drops} }

func (g *dropGame) IsGameOver() bool { return g.drops >= g.limit }

func (g *dropGame) Outcome() (core.Outcome, bool) {
	if !g.IsGameOver() {
		return core.Outcome{Moves: g.drops}, false
	}
	return core.Outcome{Winner: g.last, Moves: g.drops}, true
}

func waitEvent[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func runMatch(m *OnlineMatch) <-chan MatchResult {
	results := make(chan MatchResult, 1)
	go m.Run(func(r MatchResult) { results <- r })
	return results
}

func TestOnlineMatchBroadcastsAfterEachInput(t *testing.T) {
	p1 := NewChannelSession("s1", "alice", 16)
	p2 := NewChannelSession("s2", "bob", 16)
	m := NewOnlineMatch("m1", "ABCDEF", "drop", &dropGame{limit: 2}, p1, p2, 0)
	results := runMatch(m)

	first := waitEvent[SnapshotEvent](t, p1)
	require.Equal(t, uint64(1), first.Seq)
	require.Equal(t, countSnapshot{Drops: 0}, first.Snapshot)
	waitEvent[SnapshotEvent](t, p2)

	m.SendInput(Player1, core.FrameOf(core.ActionDrop))
	snap := waitEvent[SnapshotEvent](t, p2)
	require.Equal(t, uint64(2), snap.Seq)
	require.Equal(t, countSnapshot{Drops: 1}, snap.Snapshot)

	m.SendInput(Player2, core.FrameOf(core.ActionDrop))

	select {
	case r := <-results:
		require.Equal(t, MatchEndReasonCompleted, r.Reason)
		require.Equal(t, Player2, r.Outcome.Winner)
		require.Equal(t, 2, r.Outcome.Moves)
		require.Equal(t, MatchID("m1"), r.MatchID)
	case <-time.After(2 * time.Second):
		t.Fatal("match did not complete")
	}

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("match loop still running")
	}
}

func TestOnlineMatchDisconnectAwardsRemainingPlayer(t *testing.T) {
	p1 := NewChannelSession("s1", "alice", 16)
	p2 := NewChannelSession("s2", "bob", 16)
	m := NewOnlineMatch("m2", "ABCDEF", "drop", &dropGame{limit: 5}, p1, p2, 0)
	results := runMatch(m)

	waitEvent[SnapshotEvent](t, p1)
	p2.Close()

	select {
	case r := <-results:
		require.Equal(t, MatchEndReasonDisconnect, r.Reason)
		require.Equal(t, Player1, r.Outcome.Winner)
		require.False(t, r.Outcome.Draw)
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect not detected")
	}
}

func TestOnlineMatchIdleTimeout(t *testing.T) {
	p1 := NewChannelSession("s1", "alice", 16)
	p2 := NewChannelSession("s2", "bob", 16)
	m := NewOnlineMatch("m3", "ABCDEF", "drop", &dropGame{limit: 5}, p1, p2, 30*time.Millisecond)
	results := runMatch(m)

	select {
	case r := <-results:
		require.Equal(t, MatchEndReasonIdle, r.Reason)
		require.Equal(t, core.PlayerNone, r.Outcome.Winner)
	case <-time.After(2 * time.Second):
		t.Fatal("idle timeout did not fire")
	}
}

func TestOnlineMatchStopSkipsCallback(t *testing.T) {
	p1 := NewChannelSession("s1", "alice", 16)
	p2 := NewChannelSession("s2", "bob", 16)
	m := NewOnlineMatch("m4", "ABCDEF", "drop", &dropGame{limit: 5}, p1, p2, 0)

	var mu sync.Mutex
	called := false
	finished := make(chan struct{})
	go func() {
		m.Run(func(MatchResult) {
			mu.Lock()
			called = true
			mu.Unlock()
		})
		close(finished)
	}()

	waitEvent[SnapshotEvent](t, p1)
	m.Stop()
	m.Stop()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	mu.Lock()
	defer mu.Unlock()
	require.False(t, called)
}

func TestModeForGame(t *testing.T) {
	tests := []struct {
		id        string
		twoPlayer bool
		expected  MatchMode
	}{
		{"connect4", true, MatchModeHotseat},
		{"connect4_cpu", true, MatchModeVsCPU},
		{"connect4_online", true, MatchModeOnlinePvP},
		{"maze", false, MatchModeSolo},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			require.Equal(t, tt.expected, ModeForGame(tt.id, tt.twoPlayer))
		})
	}
}
