package web

import (
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

// Client message types.
const (
	TypeHost  = "host"
	TypeJoin  = "join"
	TypeInput = "input"
	TypeLeave = "leave"
)

// Server message types.
const (
	TypeWelcome  = "welcome"
	TypeLobby    = "lobby"
	TypeStart    = "start"
	TypeSnapshot = "snapshot"
	TypeEnd      = "end"
	TypeError    = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type   string `json:"type"`
	Code   string `json:"code,omitempty"`   // join
	Action string `json:"action,omitempty"` // input: left, right or drop
}

// ServerMessage is pushed to the browser. Fields are filled per Type.
type ServerMessage struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	MatchID  string `json:"match_id,omitempty"`
	Side     int    `json:"side,omitempty"`
	Opponent string `json:"opponent,omitempty"`
	Seq      uint64 `json:"seq,omitempty"`
	Snapshot any    `json:"snapshot,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Winner   int    `json:"winner,omitempty"`
	Draw     bool   `json:"draw,omitempty"`
	Moves    int    `json:"moves,omitempty"`
	Message  string `json:"message,omitempty"`
}

// parseAction maps an input message's action name to a game action.
// Only cursor moves and drops are accepted from browsers.
func parseAction(name string) (core.Action, bool) {
	a, _ := core.ParseAction(name)
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionDrop:
		return a, true
	}
	return core.ActionNone, false
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: msg}
}

// encodeEvent converts a coordinator event to its wire form.
func encodeEvent(evt multiplayer.SessionEvent) (ServerMessage, bool) {
	switch e := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		return ServerMessage{Type: TypeLobby, Code: e.Code, Side: int(multiplayer.Player1)}, true
	case multiplayer.LobbyJoinedEvent:
		return ServerMessage{Type: TypeLobby, Code: e.Code, Side: int(e.Side), Opponent: e.OpponentName}, true
	case multiplayer.LobbyPlayerLeftEvent:
		return ServerMessage{Type: TypeLobby, Code: e.Code, Message: "Player left the lobby"}, true
	case multiplayer.LobbyErrorEvent:
		return errorMessage(e.Message), true
	case multiplayer.MatchStartedEvent:
		return ServerMessage{
			Type:     TypeStart,
			Code:     e.Code,
			MatchID:  string(e.MatchID),
			Side:     int(e.Side),
			Opponent: e.OpponentName,
		}, true
	case multiplayer.SnapshotEvent:
		return ServerMessage{
			Type:     TypeSnapshot,
			MatchID:  string(e.MatchID),
			Seq:      e.Seq,
			Snapshot: e.Snapshot,
		}, true
	case multiplayer.MatchEndedEvent:
		return ServerMessage{
			Type:    TypeEnd,
			MatchID: string(e.MatchID),
			Reason:  e.Reason.String(),
			Winner:  int(e.Outcome.Winner),
			Draw:    e.Outcome.Draw,
			Moves:   e.Outcome.Moves,
		}, true
	}
	return ServerMessage{}, false
}
