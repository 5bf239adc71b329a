package connect4

// axes are the four line directions: horizontal, vertical, diagonal ↗, diagonal ↘.
var axes = [4]Position{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 1, Col: 1},
}

// countDir counts consecutive cells equal to p starting one step from
// (row, col) along (dr, dc).
func countDir(board [][]Piece, row, col, dr, dc int, p Piece) int {
	n := 0
	for r, c := row+dr, col+dc; inside(board, r, c) && board[r][c] == p; r, c = r+dr, c+dc {
		n++
	}
	return n
}

func inside(board [][]Piece, r, c int) bool {
	return r >= 0 && r < len(board) && c >= 0 && c < len(board[r])
}

// lineThrough returns the full run of p through (row, col) on the first axis
// that holds at least ConnectN, ordered from one end to the other, or nil.
func lineThrough(board [][]Piece, row, col int, p Piece) []Position {
	if p == Empty || !inside(board, row, col) || board[row][col] != p {
		return nil
	}
	for _, ax := range axes {
		back := countDir(board, row, col, -ax.Row, -ax.Col, p)
		fwd := countDir(board, row, col, ax.Row, ax.Col, p)
		if back+fwd+1 < ConnectN {
			continue
		}
		line := make([]Position, 0, back+fwd+1)
		for i := -back; i <= fwd; i++ {
			line = append(line, Position{Row: row + i*ax.Row, Col: col + i*ax.Col})
		}
		return line
	}
	return nil
}

// dropRow returns the row a piece would land in, or -1 when the column is full.
func dropRow(board [][]Piece, col int) int {
	for r := len(board) - 1; r >= 0; r-- {
		if board[r][col] == Empty {
			return r
		}
	}
	return -1
}

func topRowFull(board [][]Piece) bool {
	for _, p := range board[0] {
		if p == Empty {
			return false
		}
	}
	return true
}

func newBoard(rows, cols int) [][]Piece {
	b := make([][]Piece, rows)
	for r := range b {
		b[r] = make([]Piece, cols)
	}
	return b
}

func copyBoard(board [][]Piece) [][]Piece {
	out := make([][]Piece, len(board))
	for r := range board {
		out[r] = append([]Piece(nil), board[r]...)
	}
	return out
}
