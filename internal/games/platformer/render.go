package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

const (
	hudHeight  = 2
	footerRows = 2 // ground and footer
	minScreenW = 20
	minScreenH = 8
)

func viewSize(screenW, screenH int) (int, int) {
	return max(screenW, 0), max(screenH-hudHeight-footerRows, 0)
}

func (g *Game) viewW() float64 { return float64(g.cols) * g.cfg.World.UnitsPerCol }
func (g *Game) viewH() float64 { return float64(g.rows) * g.cfg.World.UnitsPerRow }

// Render draws the HUD, the visible slice of the world and the footer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	cols, rows := viewSize(dst.Width(), dst.Height())
	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.camera.Snap(g.player.CenterX(), g.viewW(), 0, g.cfg.World.Width)
	}

	g.renderHUD(dst)
	g.renderWorld(dst)
	g.renderFooter(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	jump := "ready"
	if !g.grounded {
		jump = "airborne"
	}
	hud := fmt.Sprintf(" %s  Score: %d  X: %d/%d  Jump: %s",
		g.Title(), g.score, int(g.player.X), int(g.cfg.World.Width), jump)
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderWorld(dst *core.Screen) {
	ground := hudHeight + g.rows
	for x := range dst.Width() {
		dst.SetColored(x, ground, '▀', core.ColorBrightGreen)
	}

	w := g.cfg.World
	for _, wx := range []float64{0, w.Width - w.UnitsPerCol} {
		col := int(math.Floor((wx - g.camera.Offset) / w.UnitsPerCol))
		for y := hudHeight; y < ground; y++ {
			dst.SetColored(col, y, '│', core.ColorGray)
		}
	}

	for _, p := range g.platforms {
		g.fill(dst, p, '▓', core.ColorOrange)
	}
	for _, c := range g.crates {
		g.fill(dst, c.rect, '▒', core.ColorGray)
	}
	for _, o := range g.obstacles {
		g.fill(dst, o.rect, '◆', core.ColorMagenta)
	}
	color := core.ColorRed
	if g.crashed {
		color = core.ColorBrightRed
	}
	g.fill(dst, g.player, '█', color)
}

// fill paints every cell r touches, clipped to the play area.
func (g *Game) fill(dst *core.Screen, r rect, ch rune, color core.Color) {
	w := g.cfg.World
	c0 := int(math.Floor((r.X - g.camera.Offset) / w.UnitsPerCol))
	c1 := int(math.Ceil((r.Right()-g.camera.Offset)/w.UnitsPerCol)) - 1
	r0 := int(math.Floor(r.Y / w.UnitsPerRow))
	r1 := int(math.Ceil(r.Top()/w.UnitsPerRow)) - 1

	ground := hudHeight + g.rows
	for row := max(r0, 0); row <= r1; row++ {
		y := ground - 1 - row
		if y < hudHeight {
			break
		}
		for col := max(c0, 0); col <= min(c1, dst.Width()-1); col++ {
			dst.SetColored(col, y, ch, color)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	switch {
	case g.crashed:
		dst.DrawTextCenteredColored(y, fmt.Sprintf("Squashed! Score: %d  Press R to play again", g.score), core.ColorBrightRed)
	case g.finished:
		dst.DrawTextCenteredColored(y, fmt.Sprintf("Reached the far wall! Score: %d  Press R to play again", g.score), core.ColorBrightGreen)
	case g.paused:
		dst.DrawTextCentered(y, "Paused - press P to continue")
	default:
		dst.DrawTextCentered(y, "A/D move  W jump  E drop  R restart")
	}
}
