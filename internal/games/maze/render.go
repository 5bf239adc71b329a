package maze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

const (
	hudHeight    = 2
	footerHeight = 1
	cellChars    = 2 // screen columns per maze cell
	minScreenW   = 20
	minScreenH   = 8
)

// arrows indexed by facing octant, starting east and turning toward +Y.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func viewSize(screenW, screenH int) (int, int) {
	return max(screenW, 0), max(screenH-hudHeight-footerHeight, 0)
}

func (g *Game) worldW() float64 { return float64(g.grid.Width() * cellChars) }
func (g *Game) worldH() float64 { return float64(g.grid.Height()) }

// cameraTarget is the player position in screen character units.
func (g *Game) cameraTarget() core.Vec2 {
	return core.Vec2{
		X: g.pos.X / g.cfg.CellSize * cellChars,
		Y: g.pos.Y / g.cfg.CellSize,
	}
}

// Arrow returns the glyph for the current facing.
func (g *Game) Arrow() rune {
	octant := int(math.Round(g.angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

// Render draws the maze, the player and (in pursuit mode) the chaser.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	vw, vh := viewSize(dst.Width(), dst.Height())
	if vw != g.viewW || vh != g.viewH {
		g.viewW, g.viewH = vw, vh
		g.camera.Snap(g.cameraTarget(), float64(vw), float64(vh), g.worldW(), g.worldH())
	}

	g.renderHUD(dst)
	g.renderMap(dst)
	g.renderFooter(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Visited: %d/%d", g.Title(), g.score, len(g.visited), g.goal)
	if g.mode == ModePursuer {
		hud += fmt.Sprintf("  Time: %ds", g.tick/g.tickRate)
	}
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderMap(dst *core.Screen) {
	ox, oy := g.camera.Origin()
	toScreen := func(c Cell) (int, int, bool) {
		x := c.Col*cellChars - ox
		y := c.Row - oy
		if x < 0 || x+cellChars > g.viewW || y < 0 || y >= g.viewH {
			return 0, 0, false
		}
		return x, y + hudHeight, true
	}

	for r := 0; r < g.grid.Height(); r++ {
		for c := 0; c < g.grid.Width(); c++ {
			cell := Cell{Col: c, Row: r}
			x, y, ok := toScreen(cell)
			if !ok {
				continue
			}
			switch {
			case g.grid.IsWall(cell):
				dst.SetColored(x, y, '█', core.ColorBlue)
				dst.SetColored(x+1, y, '█', core.ColorBlue)
			case g.visited[cell]:
				dst.SetColored(x, y, '·', core.ColorGray)
			}
		}
	}

	if g.mode == ModePursuer {
		if x, y, ok := toScreen(g.chaser); ok {
			dst.SetColored(x, y, '◆', core.ColorMagenta)
		}
	}
	if x, y, ok := toScreen(g.PlayerCell()); ok {
		dst.SetColored(x, y, g.Arrow(), core.ColorBrightYellow)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	switch {
	case g.invalid:
		dst.DrawTextCenteredColored(y, "Bad maze layout, using the default", core.ColorRed)
	case g.won:
		dst.DrawTextCenteredColored(y, fmt.Sprintf("Maze cleared! Score: %d  Press R to play again", g.score), core.ColorBrightGreen)
	case g.caught:
		dst.DrawTextCenteredColored(y, fmt.Sprintf("Caught! Score: %d  Press R to play again", g.score), core.ColorBrightRed)
	case g.paused:
		dst.DrawTextCentered(y, "Paused - press P to continue")
	default:
		dst.DrawTextCentered(y, "W/S move  A/D turn  P pause  R restart")
	}
}
