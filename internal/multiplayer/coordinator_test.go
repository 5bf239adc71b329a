package multiplayer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

type chanSaver struct {
	results chan MatchResultData
}

func (s chanSaver) SaveMatchResult(r MatchResultData) error {
	s.results <- r
	return nil
}

func newTestCoordinator(t *testing.T) (*Coordinator, *SessionRegistry) {
	t.Helper()
	sessions := NewSessionRegistry()
	factory := func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error) {
		if gameID != "drop" {
			return nil, errors.New("unknown game")
		}
		return &dropGame{limit: 2}, nil
	}
	cfg := DefaultCoordinatorConfig()
	cfg.MatchIdle = 0
	c := NewCoordinator(cfg, factory, sessions, nil)
	c.Start()
	t.Cleanup(c.Stop)
	return c, sessions
}

func newSession(reg *SessionRegistry, id, name string) *ChannelSession {
	s := NewChannelSession(SessionID(id), name, 32)
	reg.Register(s)
	return s
}

func TestCoordinatorLobbyToMatch(t *testing.T) {
	c, reg := newTestCoordinator(t)
	saver := chanSaver{results: make(chan MatchResultData, 1)}
	c.SetResultSaver(saver)

	host := newSession(reg, "h", "alice")
	guest := newSession(reg, "g", "bob")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	created := waitEvent[LobbyCreatedEvent](t, host)
	require.Len(t, created.Code, 6)
	require.Equal(t, "drop", created.GameID)

	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: created.Code})

	joined := waitEvent[LobbyJoinedEvent](t, guest)
	require.Equal(t, Player2, joined.Side)
	require.Equal(t, "alice", joined.OpponentName)

	hostStart := waitEvent[MatchStartedEvent](t, host)
	guestStart := waitEvent[MatchStartedEvent](t, guest)
	require.Equal(t, hostStart.MatchID, guestStart.MatchID)
	require.Equal(t, Player1, hostStart.Side)
	require.Equal(t, "bob", hostStart.OpponentName)
	require.Equal(t, "drop", guestStart.GameID)

	_, ok := c.GetLobby(created.Code)
	require.False(t, ok, "lobby should be removed once the match starts")
	mid, ok := c.MatchFor(host.ID())
	require.True(t, ok)
	require.Equal(t, hostStart.MatchID, mid)

	c.Send(PlayerInputMsg{MatchID: mid, Player: Player1, Input: core.FrameOf(core.ActionDrop)})
	waitEvent[SnapshotEvent](t, guest)
	c.Send(PlayerInputMsg{MatchID: mid, Player: Player2, Input: core.FrameOf(core.ActionDrop)})

	ended := waitEvent[MatchEndedEvent](t, host)
	require.Equal(t, MatchEndReasonCompleted, ended.Reason)
	require.Equal(t, Player2, ended.Outcome.Winner)

	select {
	case r := <-saver.results:
		require.Equal(t, string(mid), r.MatchID)
		require.Equal(t, "alice", r.Player1)
		require.Equal(t, "bob", r.Player2)
		require.Equal(t, 2, r.Winner)
		require.Equal(t, 2, r.Moves)
		require.Equal(t, MatchEndReasonCompleted.String(), r.EndReason)
	case <-time.After(2 * time.Second):
		t.Fatal("result was not saved")
	}

	_, ok = c.MatchFor(host.ID())
	require.False(t, ok)
}

func TestCoordinatorJoinErrors(t *testing.T) {
	c, reg := newTestCoordinator(t)
	host := newSession(reg, "h", "alice")
	guest := newSession(reg, "g", "bob")

	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: "NOPE42"})
	require.Equal(t, "Lobby not found", waitEvent[LobbyErrorEvent](t, guest).Message)

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	created := waitEvent[LobbyCreatedEvent](t, host)

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	require.Equal(t, "Already in a lobby", waitEvent[LobbyErrorEvent](t, host).Message)

	c.Send(JoinLobbyMsg{SessionID: host.ID(), Code: created.Code})
	require.Equal(t, "Cannot join your own lobby", waitEvent[LobbyErrorEvent](t, host).Message)

	lobby, ok := c.GetLobby(strings.ToLower(created.Code))
	require.True(t, ok)
	require.Nil(t, lobby.Joiner)
}

func TestCoordinatorUnknownGame(t *testing.T) {
	c, reg := newTestCoordinator(t)
	host := newSession(reg, "h", "alice")
	guest := newSession(reg, "g", "bob")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "chess"})
	created := waitEvent[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: created.Code})

	require.Equal(t, "Failed to create game", waitEvent[LobbyErrorEvent](t, guest).Message)
	_, ok := c.GetLobby(created.Code)
	require.False(t, ok)
}

func TestCoordinatorHostDisconnectClosesLobby(t *testing.T) {
	c, reg := newTestCoordinator(t)
	host := newSession(reg, "h", "alice")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	created := waitEvent[LobbyCreatedEvent](t, host)

	c.Send(SessionDisconnectedMsg{SessionID: host.ID()})
	require.Eventually(t, func() bool {
		_, ok := c.GetLobby(created.Code)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCoordinatorExpiresIdleLobbies(t *testing.T) {
	c, reg := newTestCoordinator(t)
	host := newSession(reg, "h", "alice")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	created := waitEvent[LobbyCreatedEvent](t, host)

	c.expireLobbies(time.Now())
	require.Equal(t, 1, c.LobbyCount(), "fresh lobby should survive")

	c.expireLobbies(time.Now().Add(c.config.LobbyTimeout + time.Second))
	require.Equal(t, "Lobby expired", waitEvent[LobbyErrorEvent](t, host).Message)
	_, ok := c.GetLobby(created.Code)
	require.False(t, ok)

	// the host may open a new lobby afterwards
	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	waitEvent[LobbyCreatedEvent](t, host)
}

func TestCoordinatorCancelLobby(t *testing.T) {
	c, reg := newTestCoordinator(t)
	host := newSession(reg, "h", "alice")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "drop"})
	created := waitEvent[LobbyCreatedEvent](t, host)

	c.Send(CancelLobbyMsg{SessionID: host.ID(), Code: strings.ToLower(created.Code)})
	require.Eventually(t, func() bool { return c.LobbyCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNewJoinCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := newJoinCode()
		require.Len(t, code, JoinCodeLength)
		for _, r := range code {
			require.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected %q in %s", r, code)
		}
	}
}
