// Package connect4 implements the Connect Four board engine, a CPU opponent
// and the arcade game that wraps them.
package connect4

// GameState owns one Connect Four board together with the turn and
// terminal-state flags. It is not safe for concurrent use.
type GameState struct {
	rows, cols int
	board      [][]Piece
	current    Piece
	status     Status
	winner     Piece
	line       []Position
	moves      []int
}

// NewGameState returns an empty board of the given size.
// Non-positive dimensions fall back to the 6x7 default.
func NewGameState(rows, cols int) *GameState {
	if rows <= 0 || cols <= 0 {
		rows, cols = DefaultRows, DefaultCols
	}
	s := &GameState{rows: rows, cols: cols}
	s.Reset()
	return s
}

// Reset clears the board and starts a new game with PlayerOne to move.
func (s *GameState) Reset() {
	s.board = newBoard(s.rows, s.cols)
	s.current = PlayerOne
	s.status = StatusInProgress
	s.winner = Empty
	s.line = nil
	s.moves = s.moves[:0]
}

// IsColumnAvailable reports whether col is on the board and its top cell is empty.
func (s *GameState) IsColumnAvailable(col int) bool {
	if col < 0 || col >= s.cols {
		return false
	}
	return s.board[0][col] == Empty
}

// DropPiece places the current player's piece in col.
//
// A full column yields a ColumnFull placement and leaves the state untouched.
// Once the game is won or drawn every call returns ErrGameOver without
// modifying the board. An out-of-range column returns ErrInvalidColumn.
func (s *GameState) DropPiece(col int) (Placement, error) {
	if s.status.Terminal() {
		return Placement{}, ErrGameOver
	}
	if col < 0 || col >= s.cols {
		return Placement{}, ErrInvalidColumn
	}

	row := dropRow(s.board, col)
	if row < 0 {
		return Placement{Kind: ColumnFull, Row: -1, Col: col}, nil
	}

	player := s.current
	s.board[row][col] = player
	s.moves = append(s.moves, col)

	switch {
	case s.CheckWin(player, row, col):
		s.status = StatusWon
		s.winner = player
		s.line = lineThrough(s.board, row, col, player)
	case s.CheckDraw():
		s.status = StatusDraw
	default:
		s.current = player.Other()
	}

	return Placement{Kind: Placed, Row: row, Col: col}, nil
}

// CheckWin reports whether player has ConnectN in a row on any axis through
// (lastRow, lastCol). Only lines through the last placed cell can be new, so
// this matches a full-board scan after every drop.
func (s *GameState) CheckWin(player Piece, lastRow, lastCol int) bool {
	return lineThrough(s.board, lastRow, lastCol, player) != nil
}

// CheckDraw reports whether every column is full.
func (s *GameState) CheckDraw() bool {
	return topRowFull(s.board)
}

// CurrentPlayer returns the player whose turn it is. After a win it is
// the winner; after a draw it is the player who filled the board.
func (s *GameState) CurrentPlayer() Piece { return s.current }

// Status returns the lifecycle state.
func (s *GameState) Status() Status { return s.status }

// Winner returns the winning player, or Empty if nobody has won.
func (s *GameState) Winner() Piece { return s.winner }

// Rows returns the board height.
func (s *GameState) Rows() int { return s.rows }

// Cols returns the board width.
func (s *GameState) Cols() int { return s.cols }

// Cell returns the piece at (row, col), or Empty when out of range.
func (s *GameState) Cell(row, col int) Piece {
	if !inside(s.board, row, col) {
		return Empty
	}
	return s.board[row][col]
}

// MoveCount returns the number of pieces on the board.
func (s *GameState) MoveCount() int { return len(s.moves) }

// Moves returns the columns played, in order.
func (s *GameState) Moves() []int {
	return append([]int(nil), s.moves...)
}

// WinningLine returns the cells of the winning run, or nil.
func (s *GameState) WinningLine() []Position {
	return append([]Position(nil), s.line...)
}

// Board returns a copy of the grid, row 0 first.
func (s *GameState) Board() [][]Piece {
	return copyBoard(s.board)
}

// Clone returns an independent copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.board = copyBoard(s.board)
	c.line = s.WinningLine()
	c.moves = s.Moves()
	return &c
}
