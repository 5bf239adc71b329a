package connect4

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Visual characters for rendering
const (
	PieceChar   = '●'
	WinChar     = '◉'
	EmptyChar   = '·'
	PreviewChar = '○'
	BlockedChar = '×'
)

// slotWidth is the number of screen columns per board column.
const slotWidth = 4

func pieceColor(p Piece) core.Color {
	switch p {
	case PlayerOne:
		return core.ColorRed
	case PlayerTwo:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

func winColor(p Piece) core.Color {
	if p == PlayerOne {
		return core.ColorBrightRed
	}
	return core.ColorBrightYellow
}

// StatusText is the turn or result line shown above the board.
func (g *Game) StatusText() string {
	switch g.state.Status() {
	case StatusWon:
		w := g.state.Winner()
		return fmt.Sprintf("Player %d (%s) Wins!", w.Number(), w.ColorName())
	case StatusDraw:
		return "It's a Draw!"
	}
	p := g.state.CurrentPlayer()
	if g.mode == ModeCPU && p == PlayerTwo {
		return "CPU is thinking..."
	}
	return fmt.Sprintf("Player %d's Turn (%s)", p.Number(), p.ColorName())
}

// Render draws the board, the drop preview and the status lines.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	rows, cols := g.state.Rows(), g.state.Cols()
	boardW := cols*slotWidth + 3
	boardH := rows + 2
	needH := boardH + 6
	if dst.Width() < boardW || dst.Height() < needH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	left := (dst.Width() - boardW) / 2
	top := (dst.Height()-needH)/2 + 3

	dst.DrawTextCenteredColored(top-3, g.Title(), core.ColorBrightBlue)

	status := g.StatusText()
	statusColor := pieceColor(g.state.CurrentPlayer())
	if g.state.Status() == StatusWon {
		statusColor = winColor(g.state.Winner())
	} else if g.state.Status() == StatusDraw {
		statusColor = core.ColorWhite
	}
	dst.DrawTextCenteredColored(top-2, status, statusColor)

	g.renderPreview(dst, left, top-1)

	dst.DrawBoxColored(core.NewRect(left, top, boardW, boardH), core.ColorBlue)

	winning := make(map[Position]bool)
	for _, pos := range g.state.WinningLine() {
		winning[pos] = true
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := glyphX(left, c), top+1+r
			p := g.state.Cell(r, c)
			switch {
			case p == Empty:
				dst.SetColored(x, y, EmptyChar, core.ColorGray)
			case winning[Position{Row: r, Col: c}]:
				dst.SetColored(x, y, WinChar, winColor(p))
			default:
				dst.SetColored(x, y, PieceChar, pieceColor(p))
			}
		}
	}

	labelY := top + boardH
	for c := 0; c < cols; c++ {
		dst.DrawTextColored(glyphX(left, c), labelY, strconv.FormatInt(int64(c+1), 36), core.ColorGray)
	}

	footerY := labelY + 2
	switch {
	case g.state.Status().Terminal():
		dst.DrawTextCentered(footerY, "Press R to play again")
	case g.paused:
		dst.DrawTextCentered(footerY, "PAUSED - press P to resume")
	case g.message != "":
		dst.DrawTextCenteredColored(footerY, g.message, core.ColorOrange)
	default:
		dst.DrawTextCenteredColored(footerY, "←/→ move  Space drop  R restart  Esc menu", core.ColorGray)
	}
}

// renderPreview draws the hover piece above the cursor column.
func (g *Game) renderPreview(dst *core.Screen, left, y int) {
	if g.state.Status().Terminal() {
		return
	}
	p := g.state.CurrentPlayer()
	col := g.cursors[p]
	if g.state.IsColumnAvailable(col) {
		dst.SetColored(glyphX(left, col), y, PreviewChar, pieceColor(p))
	} else {
		dst.SetColored(glyphX(left, col), y, BlockedChar, core.ColorGray)
	}
}

func glyphX(left, col int) int {
	return left + 3 + col*slotWidth
}
