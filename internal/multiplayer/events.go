package multiplayer

import "github.com/vovakirdan/sketch-arcade/internal/core"

// SessionEvent is pushed from the coordinator or a match to one session.
type SessionEvent interface {
	sessionEvent()
}

// Lobby events.
type (
	// LobbyCreatedEvent tells the host its join code.
	LobbyCreatedEvent struct {
		Code   string
		GameID string
	}

	// LobbyErrorEvent reports a rejected host or join request.
	LobbyErrorEvent struct {
		Message string
	}

	// LobbyJoinedEvent goes to both players once the lobby is full.
	LobbyJoinedEvent struct {
		Code         string
		Side         PlayerID
		OpponentID   SessionID
		OpponentName string
	}

	// LobbyPlayerLeftEvent tells the host its joiner went away.
	LobbyPlayerLeftEvent struct {
		Code string
	}
)

func (LobbyCreatedEvent) sessionEvent()    {}
func (LobbyErrorEvent) sessionEvent()      {}
func (LobbyJoinedEvent) sessionEvent()     {}
func (LobbyPlayerLeftEvent) sessionEvent() {}

// Match events.
type (
	// MatchStartedEvent is sent to each player before the first snapshot.
	MatchStartedEvent struct {
		MatchID      MatchID
		GameID       string
		Side         PlayerID
		Code         string
		OpponentName string
	}

	// SnapshotEvent carries the board after an applied input. Seq grows by
	// one per applied input, so clients can drop reordered snapshots.
	SnapshotEvent struct {
		MatchID  MatchID
		Seq      uint64
		Snapshot GameSnapshot
	}

	// MatchEndedEvent closes a match. Outcome is zero for abandoned lobbies.
	MatchEndedEvent struct {
		MatchID MatchID
		Reason  MatchEndReason
		Outcome core.Outcome
	}
)

func (MatchStartedEvent) sessionEvent() {}
func (SnapshotEvent) sessionEvent()     {}
func (MatchEndedEvent) sessionEvent()   {}

// GameSnapshot is the game-specific board state inside a SnapshotEvent.
type GameSnapshot interface {
	IsGameSnapshot()
}

// MatchEndReason says why a match or lobby ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota
	MatchEndReasonDisconnect
	MatchEndReasonHostLeft
	MatchEndReasonIdle
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonHostLeft:
		return "Host left"
	case MatchEndReasonIdle:
		return "Match timed out"
	default:
		return "Unknown"
	}
}

// CoordinatorMessage is a request from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

type (
	// CreateLobbyMsg hosts a new lobby for GameID.
	CreateLobbyMsg struct {
		SessionID SessionID
		GameID    string
	}

	// JoinLobbyMsg joins the lobby with Code.
	JoinLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// CancelLobbyMsg closes a lobby the session hosts.
	CancelLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveLobbyMsg leaves a lobby the session joined.
	LeaveLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveMatchMsg forfeits a running match.
	LeaveMatchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	// PlayerInputMsg is one key press from the player in seat Player.
	PlayerInputMsg struct {
		MatchID MatchID
		Player  PlayerID
		Input   core.InputFrame
	}

	// SessionDisconnectedMsg reports a dropped connection.
	SessionDisconnectedMsg struct {
		SessionID SessionID
	}
)

func (CreateLobbyMsg) coordinatorMessage()         {}
func (JoinLobbyMsg) coordinatorMessage()           {}
func (CancelLobbyMsg) coordinatorMessage()         {}
func (LeaveLobbyMsg) coordinatorMessage()          {}
func (LeaveMatchMsg) coordinatorMessage()          {}
func (PlayerInputMsg) coordinatorMessage()         {}
func (SessionDisconnectedMsg) coordinatorMessage() {}
