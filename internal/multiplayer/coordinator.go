package multiplayer

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// JoinCodeLength is the number of characters in a lobby code.
const JoinCodeLength = 6

// codeAlphabet leaves out 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Lobby is a hosted game waiting for its second player.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig tunes lobby expiry and match timeouts.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // unjoined lobbies older than this are closed
	MatchIdle     time.Duration // zero disables the idle timeout
	TickRate      int
	CleanupPeriod time.Duration
}

// DefaultCoordinatorConfig returns the server defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		MatchIdle:     5 * time.Minute,
		TickRate:      60,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory builds the game a lobby asked for.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver persists finished matches. Storage implements it; the
// coordinator does not import storage.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData is what gets recorded for a finished match.
type MatchResultData struct {
	MatchID      string
	GameID       string
	Player1      string // host
	Player2      string // joiner
	Winner       int    // 0 none, else the seat
	Draw         bool
	Moves        int
	Record       string
	EndReason    string
	DurationSecs int
}

// Coordinator pairs sessions through lobby codes and owns the running
// matches. All requests go through Send and are handled on one goroutine.
type Coordinator struct {
	config   CoordinatorConfig
	factory  GameFactory
	sessions *SessionRegistry
	saver    MatchResultSaver
	logger   *log.Logger

	mu           sync.RWMutex
	lobbies      map[string]*Lobby
	matches      map[MatchID]*OnlineMatch
	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	inbox    chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	saves    sync.WaitGroup
}

// NewCoordinator creates a coordinator. A nil logger discards output.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{
		config:       cfg,
		factory:      factory,
		sessions:     sessions,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		inbox:        make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver enables match persistence. Call before Start.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.saver = saver
}

// Start launches the message loop and lobby cleanup.
func (c *Coordinator) Start() {
	go c.loop()
	go c.cleanupLoop()
}

// Stop ends running matches and waits for their results to be saved.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		for _, m := range c.matches {
			m.Stop()
		}
		c.mu.Unlock()
		c.saves.Wait()
	})
}

// Send queues msg. It returns without effect after Stop.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.inbox <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) loop() {
	for {
		select {
		case msg := <-c.inbox:
			c.dispatch(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) dispatch(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.createLobby(m)
	case JoinLobbyMsg:
		c.joinLobby(m)
	case CancelLobbyMsg:
		c.leaveLobby(m.SessionID, m.Code)
	case LeaveLobbyMsg:
		c.leaveLobby(m.SessionID, m.Code)
	case LeaveMatchMsg:
		if match, ok := c.GetMatch(m.MatchID); ok {
			match.PlayerDisconnected(m.SessionID)
		}
	case PlayerInputMsg:
		if match, ok := c.GetMatch(m.MatchID); ok {
			match.SendInput(m.Player, m.Input)
		}
	case SessionDisconnectedMsg:
		c.disconnect(m.SessionID)
	}
}

// busy returns the error text for a session that cannot enter a lobby.
// Caller holds c.mu.
func (c *Coordinator) busy(id SessionID) string {
	if _, ok := c.sessionLobby[id]; ok {
		return "Already in a lobby"
	}
	if _, ok := c.sessionMatch[id]; ok {
		return "Already in a match"
	}
	return ""
}

func (c *Coordinator) createLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if reason := c.busy(msg.SessionID); reason != "" {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: reason})
		return
	}
	code := c.uniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", code, "game", msg.GameID, "host", session.Name())
	session.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) joinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[strings.ToUpper(msg.Code)]
	reason := c.busy(msg.SessionID)
	switch {
	case ok && lobby.Host.ID() == msg.SessionID:
		reason = "Cannot join your own lobby"
	case reason != "":
	case !ok:
		reason = "Lobby not found"
	case lobby.Joiner != nil:
		reason = "Lobby is full"
	}
	if reason != "" {
		session.Send(LobbyErrorEvent{Message: reason})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = lobby.Code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:         lobby.Code,
		Side:         Player1,
		OpponentID:   session.ID(),
		OpponentName: session.Name(),
	})
	session.Send(LobbyJoinedEvent{
		Code:         lobby.Code,
		Side:         Player2,
		OpponentID:   lobby.Host.ID(),
		OpponentName: lobby.Host.Name(),
	})

	c.startMatch(lobby)
}

// removeLobby forgets lobby and its players. Caller holds c.mu.
func (c *Coordinator) removeLobby(lobby *Lobby) {
	delete(c.lobbies, lobby.Code)
	delete(c.sessionLobby, lobby.Host.ID())
	if lobby.Joiner != nil {
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
}

// closeLobby removes a lobby whose host went away and tells the joiner.
// Caller holds c.mu.
func (c *Coordinator) closeLobby(lobby *Lobby) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
	}
	c.removeLobby(lobby)
}

// dropJoiner reopens lobby after its joiner left. Caller holds c.mu.
func (c *Coordinator) dropJoiner(lobby *Lobby) {
	delete(c.sessionLobby, lobby.Joiner.ID())
	lobby.Joiner = nil
	lobby.Host.Send(LobbyPlayerLeftEvent{Code: lobby.Code})
}

// startMatch turns a full lobby into a running match. Caller holds c.mu.
func (c *Coordinator) startMatch(lobby *Lobby) {
	host, joiner := lobby.Host, lobby.Joiner

	game, err := c.factory(lobby.GameID, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
	})
	if err != nil {
		c.logger.Error("cannot create game", "game", lobby.GameID, "error", err)
		host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create game"})
		c.removeLobby(lobby)
		return
	}

	id := MatchID(uuid.NewString())
	match := NewOnlineMatch(id, lobby.Code, lobby.GameID, game, host, joiner, c.config.MatchIdle)

	c.removeLobby(lobby)
	c.matches[id] = match
	c.sessionMatch[host.ID()] = id
	c.sessionMatch[joiner.ID()] = id

	for _, p := range []struct {
		session, opponent SessionHandle
		side              PlayerID
	}{{host, joiner, Player1}, {joiner, host, Player2}} {
		p.session.Send(MatchStartedEvent{
			MatchID:      id,
			GameID:       lobby.GameID,
			Side:         p.side,
			Code:         lobby.Code,
			OpponentName: p.opponent.Name(),
		})
	}
	c.logger.Info("match started", "match", id, "game", lobby.GameID,
		"host", host.Name(), "joiner", joiner.Name())

	go match.Run(func(result MatchResult) {
		c.finishMatch(id, result)
	})
}

func (c *Coordinator) finishMatch(id MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, ok := c.matches[id]
	if !ok {
		return
	}
	p1, p2 := match.Sessions()
	out := result.Outcome

	c.logger.Info("match ended", "match", id, "reason", result.Reason,
		"winner", out.Winner, "draw", out.Draw, "moves", out.Moves)

	if c.saver != nil {
		data := MatchResultData{
			MatchID:      string(id),
			GameID:       match.GameID(),
			Player1:      p1.Name(),
			Player2:      p2.Name(),
			Winner:       int(out.Winner),
			Draw:         out.Draw,
			Moves:        out.Moves,
			Record:       out.Record,
			EndReason:    result.Reason.String(),
			DurationSecs: int(result.Duration / time.Second),
		}
		// Stop closes done before taking c.mu, so an Add made here under
		// the lock always happens before its Wait.
		select {
		case <-c.done:
			c.saveResult(data)
		default:
			c.saves.Add(1)
			go func() {
				defer c.saves.Done()
				c.saveResult(data)
			}()
		}
	}

	delete(c.sessionMatch, p1.ID())
	delete(c.sessionMatch, p2.ID())
	delete(c.matches, id)

	ended := MatchEndedEvent{MatchID: id, Reason: result.Reason, Outcome: out}
	p1.Send(ended)
	p2.Send(ended)
}

func (c *Coordinator) saveResult(data MatchResultData) {
	if err := c.saver.SaveMatchResult(data); err != nil {
		c.logger.Warn("could not save match result", "match", data.MatchID, "error", err)
	}
}

// leaveLobby handles both cancel (host) and leave (joiner).
func (c *Coordinator) leaveLobby(id SessionID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[strings.ToUpper(code)]
	if !ok {
		return
	}
	switch {
	case lobby.Host.ID() == id:
		c.closeLobby(lobby)
	case lobby.Joiner != nil && lobby.Joiner.ID() == id:
		c.dropJoiner(lobby)
	}
}

func (c *Coordinator) disconnect(id SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, ok := c.sessionLobby[id]; ok {
		if lobby, ok := c.lobbies[code]; ok {
			if lobby.Host.ID() == id {
				c.closeLobby(lobby)
			} else if lobby.Joiner != nil && lobby.Joiner.ID() == id {
				c.dropJoiner(lobby)
			}
		}
		delete(c.sessionLobby, id)
	}

	if mid, ok := c.sessionMatch[id]; ok {
		if match, ok := c.matches[mid]; ok {
			match.PlayerDisconnected(id)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.expireLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

// expireLobbies closes unjoined lobbies older than LobbyTimeout.
func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if lobby.Joiner != nil || now.Sub(lobby.CreatedAt) <= c.config.LobbyTimeout {
			continue
		}
		c.logger.Debug("lobby expired", "code", code)
		lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
		c.removeLobby(lobby)
	}
}

// uniqueCode returns a code no open lobby uses. Caller holds c.mu.
func (c *Coordinator) uniqueCode() string {
	for {
		code := newJoinCode()
		if _, taken := c.lobbies[code]; !taken {
			return code
		}
	}
}

// newJoinCode draws JoinCodeLength characters from codeAlphabet.
func newJoinCode() string {
	b := make([]byte, JoinCodeLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// MatchFor returns the match a session is playing in.
func (c *Coordinator) MatchFor(id SessionID) (MatchID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.sessionMatch[id]
	return m, ok
}

// GetLobby looks up an open lobby. Codes are case-insensitive.
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// GetMatch looks up a running match.
func (c *Coordinator) GetMatch(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
