package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "arcade.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveMatchAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(MatchRecord{
		GameID:    "connect4",
		Mode:      multiplayer.MatchModeHotseat.String(),
		Winner:    1,
		Moves:     7,
		Record:    "3434343",
		Player1:   "Player 1",
		Player2:   "Player 2",
		EndReason: "completed",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.MatchByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "connect4", got.GameID)
	require.Equal(t, "Hotseat", got.Mode)
	require.Equal(t, 1, got.Winner)
	require.False(t, got.Draw)
	require.Equal(t, 7, got.Moves)
	require.Equal(t, "3434343", got.Record)

	missing, err := store.MatchByID("nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)
	m := MatchRecord{ID: "fixed", GameID: "connect4", Mode: "Hotseat", Player1: "a", Player2: "b", EndReason: "completed"}

	_, err := store.SaveMatch(m)
	require.NoError(t, err)
	_, err = store.SaveMatch(m)
	require.Error(t, err)
}

func TestRecentMatchesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	for _, rec := range []string{"0", "01", "012"} {
		_, err := store.SaveMatch(MatchRecord{
			GameID: "connect4", Mode: "Hotseat", Record: rec, Moves: len(rec),
			Player1: "a", Player2: "b", EndReason: "completed",
		})
		require.NoError(t, err)
	}
	_, err := store.SaveMatch(MatchRecord{
		GameID: "connect4_cpu", Mode: "vs CPU", Player1: "a", Player2: "CPU", EndReason: "completed",
	})
	require.NoError(t, err)

	got, err := store.RecentMatches("connect4", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "012", got[0].Record)
	require.Equal(t, "01", got[1].Record)

	all, err := store.RecentMatches("", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "connect4_cpu", all[0].GameID)
}

func TestPlayerRecord(t *testing.T) {
	store := openTestStore(t)
	save := func(p1, p2 string, winner int, draw bool) {
		t.Helper()
		_, err := store.SaveMatch(MatchRecord{
			GameID: "connect4", Mode: "Online PvP", Winner: winner, Draw: draw,
			Player1: p1, Player2: p2, EndReason: "completed",
		})
		require.NoError(t, err)
	}

	save("alice", "bob", 1, false)
	save("bob", "alice", 1, false)
	save("bob", "alice", 2, false)
	save("alice", "carol", 0, true)
	save("bob", "carol", 2, false)

	alice, err := store.PlayerRecord("alice")
	require.NoError(t, err)
	require.Equal(t, PlayerStats{Name: "alice", Wins: 2, Losses: 1, Draws: 1}, alice)
	require.Equal(t, 4, alice.Played())

	bob, err := store.PlayerRecord("bob")
	require.NoError(t, err)
	require.Equal(t, PlayerStats{Name: "bob", Wins: 1, Losses: 3}, bob)

	nobody, err := store.PlayerRecord("dave")
	require.NoError(t, err)
	require.Zero(t, nobody.Played())
}

func TestSaveMatchResultFromCoordinator(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:      "0b9d7f1e-6c1a-4c55-9c33-5a0d9f6f2a10",
		GameID:       "connect4",
		Player1:      "alice",
		Player2:      "bob",
		Winner:       2,
		Moves:        8,
		Record:       "33442255",
		EndReason:    multiplayer.MatchEndReasonCompleted.String(),
		DurationSecs: 42,
	})
	require.NoError(t, err)

	got, err := store.MatchByID("0b9d7f1e-6c1a-4c55-9c33-5a0d9f6f2a10")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, multiplayer.MatchModeOnlinePvP.String(), got.Mode)
	require.Equal(t, 2, got.Winner)
	require.Equal(t, 42, got.Duration)
	require.Equal(t, "Match completed", got.EndReason)
}
