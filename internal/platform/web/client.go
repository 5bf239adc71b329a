package web

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// client bridges one websocket connection to a coordinator session.
type client struct {
	conn        *websocket.Conn
	session     *multiplayer.ChannelSession
	coordinator *multiplayer.Coordinator
	gameID      string
	logger      *log.Logger

	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex

	mu      sync.Mutex
	code    string
	hosting bool
	matchID multiplayer.MatchID
	side    core.PlayerID
}

// run serves the connection until the browser goes away.
func (c *client) run() {
	pumpDone := make(chan struct{})
	defer func() {
		c.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: c.session.ID()})
		c.session.Close()
		<-pumpDone
		c.conn.Close()
	}()

	//nolint:errcheck // A failed welcome surfaces as a read error below
	c.write(ServerMessage{Type: TypeWelcome, Name: c.session.Name()})

	go func() {
		defer close(pumpDone)
		c.writePump()
	}()

	c.readLoop()
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", "name", c.session.Name(), "error", err)
			}
			return
		}
		c.handle(msg)
	}
}

// writePump forwards coordinator events and keeps the connection alive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case evt := <-c.session.Events():
			c.track(evt)
			msg, ok := encodeEvent(evt)
			if !ok {
				continue
			}
			if err := c.write(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-c.session.Done():
			return
		}
	}
}

func (c *client) write(msg ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	//nolint:errcheck
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// track records the lobby and match this client is in, so later input and
// leave messages can be addressed.
func (c *client) track(evt multiplayer.SessionEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		c.code, c.hosting = e.Code, true
	case multiplayer.LobbyJoinedEvent:
		c.code = e.Code
	case multiplayer.MatchStartedEvent:
		c.code, c.hosting = "", false
		c.matchID, c.side = e.MatchID, e.Side
	case multiplayer.MatchEndedEvent:
		c.code, c.hosting = "", false
		c.matchID, c.side = "", core.PlayerNone
	}
}

func (c *client) handle(msg ClientMessage) {
	id := c.session.ID()

	switch msg.Type {
	case TypeHost:
		c.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: id, GameID: c.gameID})

	case TypeJoin:
		code := strings.ToUpper(strings.TrimSpace(msg.Code))
		if code == "" {
			c.reply("Missing lobby code")
			return
		}
		c.coordinator.Send(multiplayer.JoinLobbyMsg{SessionID: id, Code: code})

	case TypeInput:
		action, ok := parseAction(msg.Action)
		if !ok {
			c.reply("Unknown action " + msg.Action)
			return
		}
		c.mu.Lock()
		matchID, side := c.matchID, c.side
		c.mu.Unlock()
		if matchID == "" {
			c.reply("Not in a match")
			return
		}
		c.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: matchID,
			Player:  side,
			Input:   core.FrameOf(action),
		})

	case TypeLeave:
		c.leave()

	default:
		c.reply("Unknown message type " + msg.Type)
	}
}

func (c *client) leave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.session.ID()
	switch {
	case c.matchID != "":
		c.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: id, MatchID: c.matchID})
	case c.hosting:
		c.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: id, Code: c.code})
	case c.code != "":
		c.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: id, Code: c.code})
	}
	c.code, c.hosting = "", false
}

func (c *client) reply(message string) {
	if err := c.write(errorMessage(message)); err != nil {
		c.logger.Debug("write failed", "name", c.session.Name(), "error", err)
	}
}
