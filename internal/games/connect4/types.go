package connect4

// Default board dimensions and run length.
const (
	DefaultRows = 6
	DefaultCols = 7
	ConnectN    = 4
)

// Piece is the content of one board cell.
type Piece uint8

const (
	Empty Piece = iota
	PlayerOne
	PlayerTwo
)

// Other returns the opposing player. Empty maps to Empty.
func (p Piece) Other() Piece {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

// Number returns 1 or 2 for players and 0 for Empty.
func (p Piece) Number() int {
	return int(p)
}

// ColorName is the disc color shown for the player.
func (p Piece) ColorName() string {
	switch p {
	case PlayerOne:
		return "Red"
	case PlayerTwo:
		return "Yellow"
	default:
		return ""
	}
}

// Status is the lifecycle state of a game.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further placements are accepted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusDraw
}

// PlacementKind tells whether a drop landed.
type PlacementKind int

const (
	Placed PlacementKind = iota
	ColumnFull
)

// Placement is the result of DropPiece. Row and Col are only meaningful
// when Kind is Placed.
type Placement struct {
	Kind PlacementKind
	Row  int
	Col  int
}

// Position addresses a board cell.
type Position struct {
	Row, Col int
}

// Error is a sentinel error returned by GameState.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "connect4: column out of range"
	ErrGameOver      Error = "connect4: game is over"
)
