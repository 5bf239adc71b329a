package maze

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
)

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 15, TickRate: 60, Seed: 1}
}

func newWalker(layout ...string) *Game {
	cfg := config.DefaultMazeConfig()
	if len(layout) > 0 {
		cfg.Layout = layout
	}
	g := New().WithConfig(cfg)
	g.Reset(runtimeConfig())
	return g
}

func newPursuer(grace int, layout ...string) *Game {
	cfg := config.DefaultMazeConfig()
	cfg.Layout = layout
	cfg.Pursuer = config.MazePursuer{StepTicks: 1, MinStepTicks: 1, GraceTicks: grace}
	cfg.Difficulty = config.DifficultyConfig{}
	g := NewPursuer().WithConfig(cfg)
	g.Reset(runtimeConfig())
	return g
}

func press(g *Game, a core.Action, times int) {
	for i := 0; i < times; i++ {
		g.Step(core.FrameOf(a))
	}
}

func TestWalkerStartsAtFirstOpenCell(t *testing.T) {
	g := newWalker()

	if g.PlayerCell() != (Cell{1, 1}) {
		t.Errorf("PlayerCell() = %v, expected {1 1}", g.PlayerCell())
	}
	if pos := g.Position(); pos.X != 75 || pos.Y != 75 {
		t.Errorf("Position() = %v, expected cell center (75, 75)", pos)
	}
	if g.Visited() != 1 {
		t.Errorf("Visited() = %d, expected 1", g.Visited())
	}
}

func TestForwardStopsAtWall(t *testing.T) {
	g := newWalker()

	// Row 1 is open for columns 1-3; column 4 is a wall starting at x=200.
	press(g, core.ActionUp, 20)

	if pos := g.Position(); pos.X != 187.5 || pos.Y != 75 {
		t.Errorf("Position() = %v, expected (187.5, 75)", pos)
	}
	if g.Visited() != 3 {
		t.Errorf("Visited() = %d, expected 3", g.Visited())
	}
	if g.State().Score != 3 {
		t.Errorf("Score = %d, expected 3", g.State().Score)
	}
}

func TestBackwardUsesTrailingPadding(t *testing.T) {
	g := newWalker()

	press(g, core.ActionDown, 2)

	// 62.5 - 5 is still in column 1; 50 - 5 would be inside the wall.
	if pos := g.Position(); pos.X != 62.5 {
		t.Errorf("Position().X = %v, expected 62.5", pos.X)
	}
}

func TestTurning(t *testing.T) {
	tests := []struct {
		name     string
		action   core.Action
		times    int
		angle    float64
		expected rune
	}{
		{"right once", core.ActionRight, 1, math.Pi / 4, '↘'},
		{"right twice", core.ActionRight, 2, math.Pi / 2, '↓'},
		{"left once", core.ActionLeft, 1, 7 * math.Pi / 4, '↗'},
		{"full circle", core.ActionRight, 8, 0, '→'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newWalker()
			press(g, tt.action, tt.times)

			diff := math.Abs(g.Angle() - tt.angle)
			if diff > 1e-9 && math.Abs(diff-2*math.Pi) > 1e-9 {
				t.Errorf("Angle() = %v, expected %v", g.Angle(), tt.angle)
			}
			if g.Arrow() != tt.expected {
				t.Errorf("Arrow() = %c, expected %c", g.Arrow(), tt.expected)
			}
		})
	}
}

func TestTurnThenWalkSouth(t *testing.T) {
	g := newWalker()

	press(g, core.ActionRight, 2)
	press(g, core.ActionUp, 8)

	if g.PlayerCell() != (Cell{1, 3}) {
		t.Errorf("PlayerCell() = %v, expected {1 3}", g.PlayerCell())
	}
}

func TestWalkerWinsAfterVisitingEveryCell(t *testing.T) {
	g := newWalker("1111", "1001", "1111")

	press(g, core.ActionUp, 2)

	if !g.Won() {
		t.Fatal("expected walker to win after visiting both cells")
	}
	state := g.State()
	if !state.GameOver || state.Score != 2 {
		t.Errorf("State() = %+v, expected game over with score 2", state)
	}

	pos := g.Position()
	press(g, core.ActionDown, 3)
	if g.Position() != pos {
		t.Error("input after the win should be ignored")
	}
}

func TestWalkerIgnoresWalledOffCells(t *testing.T) {
	// (3,1) is open but cannot be reached from the start.
	g := newWalker("11111", "10101", "11111")

	if g.Goal() != 1 {
		t.Fatalf("Goal() = %d, expected 1", g.Goal())
	}
	press(g, core.ActionUp, 1)
	if !g.Won() {
		t.Error("walker should win once every reachable cell is visited")
	}

	screen := core.NewScreen(40, 15)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Visited: 1/1") {
		t.Errorf("HUD should count reachable cells:\n%s", screen.String())
	}
}

func TestPursuerCatchesIdlePlayer(t *testing.T) {
	g := newPursuer(0, "111111", "100001", "111111")

	if g.Chaser() != (Cell{4, 1}) {
		t.Fatalf("Chaser() = %v, expected start at farthest cell {4 1}", g.Chaser())
	}

	press(g, core.ActionNone, 2)
	if g.Caught() {
		t.Fatal("caught too early")
	}
	if g.Chaser() != (Cell{2, 1}) {
		t.Errorf("Chaser() = %v, expected {2 1}", g.Chaser())
	}

	press(g, core.ActionNone, 1)
	if !g.Caught() || !g.State().GameOver {
		t.Error("expected the chaser to catch the player")
	}
}

func TestPursuerGracePeriod(t *testing.T) {
	g := newPursuer(3, "111111", "100001", "111111")

	press(g, core.ActionNone, 3)
	if g.Chaser() != (Cell{4, 1}) {
		t.Errorf("Chaser() moved during grace: %v", g.Chaser())
	}

	press(g, core.ActionNone, 1)
	if g.Chaser() != (Cell{3, 1}) {
		t.Errorf("Chaser() = %v, expected {3 1} after grace", g.Chaser())
	}
}

func TestPursuerScoreCountsSeconds(t *testing.T) {
	g := newPursuer(1000, "1111111", "1000001", "1111111")

	press(g, core.ActionNone, 120)

	if g.State().Score != 1+2 {
		t.Errorf("Score = %d, expected 3 (1 cell + 2 seconds)", g.State().Score)
	}
}

func TestRestartAndPause(t *testing.T) {
	g := newPursuer(0, "111111", "100001", "111111")
	press(g, core.ActionNone, 3)
	if !g.Caught() {
		t.Fatal("setup: expected caught")
	}

	g.Step(core.FrameOf(core.ActionRestart))
	if g.Caught() || g.Chaser() != (Cell{4, 1}) {
		t.Error("Restart should reset the chase")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	press(g, core.ActionNone, 5)
	if g.Chaser() != (Cell{4, 1}) {
		t.Error("chaser moved while paused")
	}
}

func TestRenderShowsPlayer(t *testing.T) {
	g := newWalker()
	screen := core.NewScreen(40, 15)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Maze Walker") {
		t.Error("HUD title missing")
	}
	if !strings.Contains(out, "→") {
		t.Error("player arrow missing")
	}
	if !strings.Contains(out, "█") {
		t.Error("walls missing")
	}
}

func TestRenderFollowsPlayerInLargeMaze(t *testing.T) {
	layout := make([]string, 30)
	for r := range layout {
		if r == 0 || r == len(layout)-1 {
			layout[r] = strings.Repeat("1", 60)
		} else {
			layout[r] = "1" + strings.Repeat("0", 58) + "1"
		}
	}
	g := newWalker(layout...)
	screen := core.NewScreen(40, 15)

	press(g, core.ActionUp, 100)
	g.Render(screen)

	if g.PlayerCell().Col != 26 {
		t.Fatalf("PlayerCell() = %v, expected column 26", g.PlayerCell())
	}
	if !strings.Contains(screen.String(), "→") {
		t.Error("camera lost the player")
	}
	if ox, _ := g.camera.Origin(); ox <= 0 {
		t.Errorf("camera origin x = %d, expected it to scroll right", ox)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newWalker()
	screen := core.NewScreen(19, 6)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestIDsAndTitles(t *testing.T) {
	if New().ID() != "maze" || NewPursuer().ID() != "maze_pursuer" {
		t.Error("unexpected game IDs")
	}
	if New().Title() != "Maze Walker" || NewPursuer().Title() != "Maze Pursuit" {
		t.Error("unexpected titles")
	}
}
