package connect4

import (
	"math"
	"math/rand"
)

// Bot picks a column for the player to move.
type Bot interface {
	ChooseColumn(s *GameState) int
}

// NewBot returns the bot for a difficulty name. "easy" plays
// win-block-random; anything else searches with minimax to depth.
func NewBot(difficulty string, depth int, rng *rand.Rand) Bot {
	if difficulty == "easy" {
		return &EasyBot{rng: rng}
	}
	if depth <= 0 {
		depth = 4
	}
	return &MinimaxBot{Depth: depth}
}

// EasyBot takes an immediate win, otherwise blocks an immediate loss,
// otherwise plays a random legal column.
type EasyBot struct {
	rng *rand.Rand
}

// ChooseColumn returns -1 when no column is available.
func (b *EasyBot) ChooseColumn(s *GameState) int {
	board := s.Board()
	me := s.CurrentPlayer()
	valid := validColumns(board)
	if len(valid) == 0 {
		return -1
	}
	if col := winningColumn(board, valid, me); col >= 0 {
		return col
	}
	if col := winningColumn(board, valid, me.Other()); col >= 0 {
		return col
	}
	if b.rng == nil {
		return valid[rand.Intn(len(valid))]
	}
	return valid[b.rng.Intn(len(valid))]
}

func winningColumn(board [][]Piece, valid []int, p Piece) int {
	for _, col := range valid {
		row := dropRow(board, col)
		board[row][col] = p
		won := lineThrough(board, row, col, p) != nil
		board[row][col] = Empty
		if won {
			return col
		}
	}
	return -1
}

// validColumns lists open columns ordered from the center outward.
func validColumns(board [][]Piece) []int {
	cols := len(board[0])
	center := cols / 2
	order := []int{center}
	for d := 1; len(order) < cols; d++ {
		if center-d >= 0 {
			order = append(order, center-d)
		}
		if center+d < cols {
			order = append(order, center+d)
		}
	}

	out := order[:0]
	for _, c := range order {
		if board[0][c] == Empty {
			out = append(out, c)
		}
	}
	return out
}

const (
	scoreWin   = 1_000_000
	scoreThree = 5
	scoreTwo   = 2
	scoreBlock = 4
	scoreMid   = 3
)

// MinimaxBot searches the game tree with alpha-beta pruning.
type MinimaxBot struct {
	Depth int
}

// ChooseColumn returns -1 when no column is available.
func (b *MinimaxBot) ChooseColumn(s *GameState) int {
	board := s.Board()
	me := s.CurrentPlayer()
	valid := validColumns(board)
	if len(valid) == 0 {
		return -1
	}

	best, bestScore := valid[0], math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, col := range valid {
		row := dropRow(board, col)
		board[row][col] = me
		var score int
		if lineThrough(board, row, col, me) != nil {
			score = scoreWin + b.Depth
		} else {
			score = minimax(board, b.Depth-1, alpha, beta, false, me)
		}
		board[row][col] = Empty

		if score > bestScore {
			best, bestScore = col, score
		}
		alpha = max(alpha, bestScore)
	}
	return best
}

func minimax(board [][]Piece, depth, alpha, beta int, maximizing bool, me Piece) int {
	valid := validColumns(board)
	if len(valid) == 0 {
		return 0
	}
	if depth <= 0 {
		return evaluate(board, me)
	}

	mover := me
	if !maximizing {
		mover = me.Other()
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, col := range valid {
		row := dropRow(board, col)
		board[row][col] = mover
		var score int
		switch {
		case lineThrough(board, row, col, mover) != nil && maximizing:
			score = scoreWin + depth
		case lineThrough(board, row, col, mover) != nil:
			score = -scoreWin - depth
		default:
			score = minimax(board, depth-1, alpha, beta, !maximizing, me)
		}
		board[row][col] = Empty

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// evaluate scores every window of ConnectN cells from me's point of view,
// plus a bonus for holding the center column.
func evaluate(board [][]Piece, me Piece) int {
	rows, cols := len(board), len(board[0])
	score := 0

	center := cols / 2
	for r := 0; r < rows; r++ {
		if board[r][center] == me {
			score += scoreMid
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for _, ax := range axes {
				endR, endC := r+(ConnectN-1)*ax.Row, c+(ConnectN-1)*ax.Col
				if !inside(board, endR, endC) {
					continue
				}
				var mine, theirs int
				for i := 0; i < ConnectN; i++ {
					switch board[r+i*ax.Row][c+i*ax.Col] {
					case me:
						mine++
					case Empty:
					default:
						theirs++
					}
				}
				score += window(mine, theirs)
			}
		}
	}
	return score
}

func window(mine, theirs int) int {
	empty := ConnectN - mine - theirs
	switch {
	case mine == 3 && empty == 1:
		return scoreThree
	case mine == 2 && empty == 2:
		return scoreTwo
	case theirs == 3 && empty == 1:
		return -scoreBlock
	}
	return 0
}
