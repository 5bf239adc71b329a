// Package multiplayer pairs remote sessions into two-player matches.
// Lobbies are joined by short codes; matches run one goroutine each and
// push snapshots back to the sessions after every applied input.
package multiplayer

import (
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is the lobby host, Player2 the joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's connection (SSH or websocket).
type SessionID string

// MatchID uniquely identifies a game match.
// A match can involve one or more sessions depending on mode.
type MatchID string

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game (maze).
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU is player vs computer (connect4_cpu).
	MatchModeVsCPU

	// MatchModeHotseat is two players on one keyboard.
	MatchModeHotseat

	// MatchModeOnlinePvP is two remote sessions paired through a lobby.
	MatchModeOnlinePvP
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeHotseat:
		return "Hotseat"
	case MatchModeOnlinePvP:
		return "Online PvP"
	default:
		return "Unknown"
	}
}

// ModeForGame returns the mode a locally played game runs in.
func ModeForGame(gameID string, twoPlayer bool) MatchMode {
	switch {
	case strings.HasSuffix(gameID, "_cpu"):
		return MatchModeVsCPU
	case strings.HasSuffix(gameID, "_online"):
		return MatchModeOnlinePvP
	case twoPlayer:
		return MatchModeHotseat
	default:
		return MatchModeSolo
	}
}
