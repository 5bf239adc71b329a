package connect4

import (
	"fmt"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

// Snapshot contains the complete state of a Connect Four game for network
// transmission. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64 `json:"tick"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	Cells   []int  `json:"cells"` // row-major, 0 empty, 1/2 players
	Current int    `json:"current"`
	Status  string `json:"status"`
	Winner  int    `json:"winner"`
	Line    []int  `json:"line,omitempty"` // flattened row, col pairs
	Moves   string `json:"moves"`
	Cursor1 int    `json:"cursor1"`
	Cursor2 int    `json:"cursor2"`
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var (
	_ multiplayer.GameSnapshot = Snapshot{}
	_ multiplayer.OnlineGame   = (*Game)(nil)
)

// Snapshot returns the current game state.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	s := g.state
	cells := make([]int, 0, s.Rows()*s.Cols())
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			cells = append(cells, s.Cell(r, c).Number())
		}
	}
	var line []int
	for _, pos := range s.line {
		line = append(line, pos.Row, pos.Col)
	}
	return Snapshot{
		Tick:    g.tick,
		Rows:    s.Rows(),
		Cols:    s.Cols(),
		Cells:   cells,
		Current: s.CurrentPlayer().Number(),
		Status:  s.Status().String(),
		Winner:  s.Winner().Number(),
		Line:    line,
		Moves:   EncodeMoves(s.moves),
		Cursor1: g.cursors[PlayerOne],
		Cursor2: g.cursors[PlayerTwo],
	}
}

// ApplySnapshot replaces the local state with the server's.
// Snapshots with a cell count that does not match Rows*Cols are ignored.
func (g *Game) ApplySnapshot(snap Snapshot) {
	if snap.Rows <= 0 || snap.Cols <= 0 || len(snap.Cells) != snap.Rows*snap.Cols {
		return
	}

	s := &GameState{rows: snap.Rows, cols: snap.Cols}
	s.board = newBoard(snap.Rows, snap.Cols)
	for i, v := range snap.Cells {
		s.board[i/snap.Cols][i%snap.Cols] = Piece(v)
	}
	s.current = Piece(snap.Current)
	s.winner = Piece(snap.Winner)
	switch snap.Status {
	case StatusWon.String():
		s.status = StatusWon
	case StatusDraw.String():
		s.status = StatusDraw
	default:
		s.status = StatusInProgress
	}
	for i := 0; i+1 < len(snap.Line); i += 2 {
		s.line = append(s.line, Position{Row: snap.Line[i], Col: snap.Line[i+1]})
	}
	if moves, err := DecodeMoves(snap.Moves); err == nil {
		s.moves = moves
	}

	g.state = s
	g.tick = snap.Tick
	g.cursors[PlayerOne] = snap.Cursor1
	g.cursors[PlayerTwo] = snap.Cursor2
}

// StepMulti applies input from both seats. Either player may move their
// own cursor at any time; only the player on turn can drop.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.state.Status().Terminal() {
		return core.StepResult{State: g.State()}
	}
	g.advance()
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		if g.state.Status().Terminal() {
			break
		}
		g.handleInput(pieceOf(id), in.Player(id))
	}
	return core.StepResult{State: g.State()}
}

// IsGameOver reports whether the game has reached a terminal state.
func (g *Game) IsGameOver() bool {
	return g.state.Status().Terminal()
}

// OnlineFactory builds games for the multiplayer coordinator.
func OnlineFactory(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	switch gameID {
	case "connect4", "connect4_online":
		g := NewOnline()
		g.Reset(cfg)
		return g, nil
	}
	return nil, fmt.Errorf("connect4: no online mode for %q", gameID)
}
