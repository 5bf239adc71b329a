package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// OnlineGame is a game two remote players can share. Implementations are
// driven from a single goroutine.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)
	// StepMulti applies whatever the frame carries for either seat.
	StepMulti(input core.MultiInputFrame) core.StepResult
	Snapshot() GameSnapshot
	IsGameOver() bool
	// Outcome reports the result. The bool is false while in progress.
	Outcome() (core.Outcome, bool)
}

// MatchResult is handed to Run's callback when a match ends.
type MatchResult struct {
	MatchID  MatchID
	Reason   MatchEndReason
	Outcome  core.Outcome
	Duration time.Duration
}

// OnlineMatch runs one game between two sessions. The game is only touched
// by the Run goroutine.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	game   OnlineGame
	seats  [2]SessionHandle // host, joiner

	moves chan seatInput
	left  chan SessionID
	idle  time.Duration

	seq      uint64
	started  time.Time
	done     chan struct{}
	stopOnce sync.Once
}

type seatInput struct {
	seat  PlayerID
	frame core.InputFrame
}

// NewOnlineMatch creates a match. The host plays Player1. An idle duration
// of zero never times out.
func NewOnlineMatch(
	id MatchID,
	code string,
	gameID string,
	game OnlineGame,
	host, joiner SessionHandle,
	idle time.Duration,
) *OnlineMatch {
	return &OnlineMatch{
		id:     id,
		code:   code,
		gameID: gameID,
		game:   game,
		seats:  [2]SessionHandle{host, joiner},
		moves:  make(chan seatInput, 64),
		left:   make(chan SessionID, 2),
		idle:   idle,
		done:   make(chan struct{}),
	}
}

func (m *OnlineMatch) ID() MatchID { return m.id }

// Code returns the lobby code the match was started from.
func (m *OnlineMatch) Code() string { return m.code }

func (m *OnlineMatch) GameID() string { return m.gameID }

// Done is closed once Run returns or Stop is called.
func (m *OnlineMatch) Done() <-chan struct{} { return m.done }

// Sessions returns the host and the joiner.
func (m *OnlineMatch) Sessions() (SessionHandle, SessionHandle) {
	return m.seats[0], m.seats[1]
}

// SendInput queues a move for seat. A full queue drops it.
func (m *OnlineMatch) SendInput(seat PlayerID, input core.InputFrame) {
	select {
	case m.moves <- seatInput{seat: seat, frame: input}:
	default:
	}
}

// PlayerDisconnected ends the match in favour of the other seat.
func (m *OnlineMatch) PlayerDisconnected(id SessionID) {
	select {
	case m.left <- id:
	default:
	}
}

// Run drives the match until the game ends, a player leaves or the idle
// timer fires, then calls onComplete once. A snapshot goes to both players
// at the start and after every applied move. Stop returns without calling
// onComplete.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	m.started = time.Now()
	m.broadcast()
	go m.watchSessions()

	var timeout <-chan time.Time
	var timer *time.Timer
	if m.idle > 0 {
		timer = time.NewTimer(m.idle)
		defer timer.Stop()
		timeout = timer.C
	}

	var res MatchResult
loop:
	for {
		select {
		case in := <-m.moves:
			frame := core.NewMultiInputFrame()
			frame.SetPlayer(in.seat, in.frame)
			m.game.StepMulti(frame)
			m.broadcast()
			if m.game.IsGameOver() {
				out, _ := m.game.Outcome()
				res = m.result(MatchEndReasonCompleted, out)
				break loop
			}
			if timer != nil {
				timer.Reset(m.idle)
			}

		case id := <-m.left:
			res = m.forfeit(id)
			break loop

		case <-timeout:
			res = m.result(MatchEndReasonIdle, core.Outcome{})
			break loop

		case <-m.done:
			return
		}
	}

	if onComplete != nil {
		onComplete(res)
	}
}

func (m *OnlineMatch) broadcast() {
	m.seq++
	evt := SnapshotEvent{MatchID: m.id, Seq: m.seq, Snapshot: m.game.Snapshot()}
	for _, s := range m.seats {
		s.Send(evt)
	}
}

func (m *OnlineMatch) result(reason MatchEndReason, out core.Outcome) MatchResult {
	return MatchResult{
		MatchID:  m.id,
		Reason:   reason,
		Outcome:  out,
		Duration: time.Since(m.started),
	}
}

// forfeit awards the match to whoever did not leave, keeping the move
// count and record played so far.
func (m *OnlineMatch) forfeit(leaver SessionID) MatchResult {
	out, _ := m.game.Outcome()
	out.Draw = false
	out.Winner = Player1
	if leaver == m.seats[0].ID() {
		out.Winner = Player2
	}
	return m.result(MatchEndReasonDisconnect, out)
}

// watchSessions reports the first seat whose connection closes.
func (m *OnlineMatch) watchSessions() {
	select {
	case <-m.seats[0].Done():
		m.PlayerDisconnected(m.seats[0].ID())
	case <-m.seats[1].Done():
		m.PlayerDisconnected(m.seats[1].ID())
	case <-m.done:
	}
}

// Stop ends the loop. Safe to call more than once.
func (m *OnlineMatch) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}
