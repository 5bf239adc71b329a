package platformer

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// A 40x15 screen leaves a 40x11 play area: 800 x 330 world units.
func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 15, TickRate: 60, Seed: 1}
}

// emptyWorld is the default world with nothing in it and no timed drops.
func emptyWorld() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Platforms = nil
	cfg.Crates = nil
	cfg.Obstacles.StepTicks = 0
	cfg.Difficulty = config.DifficultyConfig{}
	return cfg
}

func newGame(cfg config.PlatformerConfig) *Game {
	g := New().WithConfig(cfg)
	g.Reset(runtimeConfig())
	return g
}

func startingAt(x float64) *Game {
	cfg := emptyWorld()
	cfg.Player.StartX = x
	return newGame(cfg)
}

func press(g *Game, a core.Action, times int) {
	for range times {
		g.Step(core.FrameOf(a))
	}
}

func idle(g *Game, ticks int) {
	for range ticks {
		g.Step(core.NewInputFrame())
	}
}

func playerX(g *Game) float64 {
	x, _, _, _ := g.Player()
	return x
}

func playerY(g *Game) float64 {
	_, y, _, _ := g.Player()
	return y
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("platformer")
	if err != nil {
		t.Fatalf("Create(platformer) = %v", err)
	}
	if g.ID() != "platformer" || g.Title() != "Side Scroller" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestCameraClampsToWorld(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		offset float64
	}{
		{"left wall", 0, 0},
		{"near left wall", 180, 0},
		{"middle", 4000, 3620},
		{"near right wall", 7860, 7200},
		{"right wall", 7960, 7200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := startingAt(tc.startX)
			if g.CameraOffset() != tc.offset {
				t.Errorf("CameraOffset() = %v, expected %v", g.CameraOffset(), tc.offset)
			}
		})
	}
}

func TestCameraStaysAtLeftEdge(t *testing.T) {
	g := startingAt(180)

	press(g, core.ActionLeft, 80)

	if playerX(g) != 0 {
		t.Errorf("player x = %v, expected the left wall at 0", playerX(g))
	}
	if g.CameraOffset() != 0 {
		t.Errorf("CameraOffset() = %v, expected 0", g.CameraOffset())
	}
}

func TestCameraStaysAtRightEdge(t *testing.T) {
	g := startingAt(7860)

	press(g, core.ActionRight, 60)

	if playerX(g) != 7960 {
		t.Errorf("player x = %v, expected 7960 against the right wall", playerX(g))
	}
	if g.CameraOffset() != 7200 {
		t.Errorf("CameraOffset() = %v, expected world width minus view, 7200", g.CameraOffset())
	}
}

func TestCameraEases(t *testing.T) {
	g := startingAt(4000)

	g.Step(core.FrameOf(core.ActionRight))

	// the target moved 1.5 units; the camera covers 8% of that per tick
	want := 3620 + 1.5*core.DefaultSmoothing
	if math.Abs(g.CameraOffset()-want) > 1e-9 {
		t.Errorf("CameraOffset() = %v, expected %v", g.CameraOffset(), want)
	}
}

func TestJumpFromGround(t *testing.T) {
	g := newGame(emptyWorld())
	if !g.Grounded() {
		t.Fatal("player should start grounded")
	}

	g.Step(core.FrameOf(core.ActionUp))

	if playerY(g) <= 0 || g.Grounded() {
		t.Errorf("after jump y = %v grounded = %v, expected airborne", playerY(g), g.Grounded())
	}
}

func TestNoJumpInMidAir(t *testing.T) {
	g := newGame(emptyWorld())
	g.Step(core.FrameOf(core.ActionUp))
	_, vy := g.Velocity()

	g.Step(core.FrameOf(core.ActionUp))

	_, next := g.Velocity()
	if want := vy - g.cfg.World.Gravity; math.Abs(next-want) > 1e-9 {
		t.Errorf("vy = %v after a mid-air jump, expected gravity only (%v)", next, want)
	}
}

func TestJumpAgainAfterLanding(t *testing.T) {
	g := newGame(emptyWorld())
	g.Step(core.FrameOf(core.ActionDrop))

	for i := 0; i < 100 && !g.Grounded(); i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.Grounded() || playerY(g) != 0 {
		t.Fatalf("player did not land: y = %v", playerY(g))
	}

	g.Step(core.FrameOf(core.ActionDrop))
	if playerY(g) <= 0 {
		t.Error("jump from the ground after landing was ignored")
	}
}

func TestJumpFromPlatform(t *testing.T) {
	cfg := emptyWorld()
	cfg.Platforms = []config.Box{{X: 100, Y: 30, W: 300, H: 20}}
	g := newGame(cfg)

	if playerY(g) != 50 {
		t.Fatalf("player y = %v, expected to start on the platform top at 50", playerY(g))
	}
	idle(g, 5)
	if playerY(g) != 50 || !g.Grounded() {
		t.Fatalf("player y = %v grounded = %v, expected to stand on the platform", playerY(g), g.Grounded())
	}

	g.Step(core.FrameOf(core.ActionUp))

	if _, vy := g.Velocity(); playerY(g) <= 50 || vy <= 0 {
		t.Errorf("after jump y = %v vy = %v, expected to rise off the platform", playerY(g), vy)
	}
}

func TestHeadHitsPlatformUnderside(t *testing.T) {
	cfg := emptyWorld()
	cfg.Platforms = []config.Box{{X: 100, Y: 100, W: 300, H: 20}}
	g := newGame(cfg)

	g.Step(core.FrameOf(core.ActionUp))
	highest := 0.0
	for range 60 {
		g.Step(core.NewInputFrame())
		highest = max(highest, playerY(g))
	}

	if highest > 40 {
		t.Errorf("player reached y = %v, expected the platform at 100 to stop the 60-unit body at 40", highest)
	}
}

func TestWallStopsPlayer(t *testing.T) {
	g := startingAt(10)

	press(g, core.ActionLeft, 10)

	if vx, _ := g.Velocity(); playerX(g) != 0 || vx != 0 {
		t.Errorf("x = %v vx = %v, expected to stop at the wall", playerX(g), vx)
	}
}

func TestSpeedIsCapped(t *testing.T) {
	g := newGame(emptyWorld())

	press(g, core.ActionRight, 10)
	if vx, _ := g.Velocity(); vx != g.cfg.Player.MaxSpeed {
		t.Errorf("vx = %v, expected the cap %v", vx, g.cfg.Player.MaxSpeed)
	}

	idle(g, 200)
	if vx, _ := g.Velocity(); vx != 0 {
		t.Errorf("vx = %v after letting go, expected friction to stop the player", vx)
	}
}

func TestCrateBlocksPlayer(t *testing.T) {
	cfg := emptyWorld()
	cfg.Crates = []config.Box{{X: 300, Y: 0, W: 50, H: 50}}
	g := newGame(cfg)

	press(g, core.ActionRight, 60)

	if playerX(g) != 260 {
		t.Errorf("player x = %v, expected 260 against the crate", playerX(g))
	}
}

func TestCrateSettlesOnPlatform(t *testing.T) {
	cfg := emptyWorld()
	cfg.Platforms = []config.Box{{X: 550, Y: 50, W: 200, H: 30}}
	cfg.Crates = []config.Box{{X: 600, Y: 200, W: 50, H: 50}}
	g := newGame(cfg)

	idle(g, 100)

	if c := g.crates[0]; !c.resting || c.Y != 80 {
		t.Errorf("crate y = %v resting = %v, expected to rest on the platform top at 80", c.Y, c.resting)
	}
}

func TestObstacleOnPlayerEndsRun(t *testing.T) {
	g := newGame(emptyWorld())
	g.dropAt(g.player.CenterX(), 30)

	for i := 0; i < 100 && !g.Crashed(); i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.Crashed() || !g.State().GameOver {
		t.Fatal("an obstacle landing on the player should end the run")
	}
	x := playerX(g)
	press(g, core.ActionRight, 5)
	if playerX(g) != x {
		t.Error("player moved after the run ended")
	}
}

func TestWalkingIntoObstacleEndsRun(t *testing.T) {
	g := newGame(emptyWorld())
	g.dropAt(400, 30)
	idle(g, 60)
	if g.Crashed() {
		t.Fatal("obstacle away from the player should not end the run")
	}

	for i := 0; i < 100 && !g.Crashed(); i++ {
		g.Step(core.FrameOf(core.ActionRight))
	}

	if !g.Crashed() {
		t.Error("walking into a resting obstacle should end the run")
	}
}

func TestSpawnDropsNearCameraCenter(t *testing.T) {
	g := startingAt(0)

	g.Step(core.FrameOf(core.ActionSpawn))
	if g.Obstacles() != 1 {
		t.Fatalf("Obstacles() = %d, expected 1", g.Obstacles())
	}
	idle(g, 60)

	o := g.obstacles[0]
	// view is 800 units from offset 0: center 400, a quarter view either side
	if o.CenterX() < 200 || o.CenterX() > 600 {
		t.Errorf("obstacle center x = %v, expected within [200, 600]", o.CenterX())
	}
	if !o.resting || o.Y != 0 {
		t.Errorf("obstacle y = %v resting = %v, expected on the ground", o.Y, o.resting)
	}
	if g.Crashed() {
		t.Error("obstacle away from the player should not end the run")
	}
}

func TestObstacleLimitDropsOldest(t *testing.T) {
	cfg := emptyWorld()
	cfg.Obstacles.Max = 2
	g := newGame(cfg)

	g.dropAt(1000, 20)
	g.dropAt(1200, 20)
	g.dropAt(1400, 20)

	if g.Obstacles() != 2 {
		t.Fatalf("Obstacles() = %d, expected 2", g.Obstacles())
	}
	if g.obstacles[0].X != 1190 {
		t.Errorf("oldest kept obstacle x = %v, expected 1190", g.obstacles[0].X)
	}
}

func TestTimedDrops(t *testing.T) {
	cfg := emptyWorld()
	cfg.Obstacles.StepTicks = 10
	cfg.Obstacles.MinStepTicks = 10
	g := newGame(cfg)

	idle(g, 9)
	if g.Obstacles() != 0 {
		t.Fatalf("Obstacles() = %d after 9 ticks, expected 0", g.Obstacles())
	}
	idle(g, 1)
	if g.Obstacles() != 1 {
		t.Errorf("Obstacles() = %d after 10 ticks, expected 1", g.Obstacles())
	}
}

func TestReachingFarWallFinishes(t *testing.T) {
	g := startingAt(7900)

	for i := 0; i < 100 && !g.Finished(); i++ {
		g.Step(core.FrameOf(core.ActionRight))
	}

	if !g.Finished() || !g.State().GameOver {
		t.Fatal("reaching the right wall should finish the run")
	}
	if got := g.State().Score; got != 6+finishBonus {
		t.Errorf("Score = %d, expected %d", got, 6+finishBonus)
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newGame(emptyWorld())

	g.Step(core.FrameOf(core.ActionPause))
	press(g, core.ActionRight, 5)
	if playerX(g) != 180 || !g.State().Paused {
		t.Errorf("x = %v while paused, expected 180", playerX(g))
	}

	g.Step(core.FrameOf(core.ActionPause))
	press(g, core.ActionRight, 5)
	g.Step(core.FrameOf(core.ActionSpawn))
	if playerX(g) == 180 {
		t.Fatal("player did not move after unpausing")
	}

	g.Step(core.FrameOf(core.ActionRestart))
	if playerX(g) != 180 || g.Obstacles() != 0 || g.State().Score != 0 {
		t.Errorf("after restart x = %v obstacles = %d score = %d", playerX(g), g.Obstacles(), g.State().Score)
	}
}

func TestRender(t *testing.T) {
	g := newGame(config.DefaultPlatformerConfig())
	screen := core.NewScreen(40, 15)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Side Scroller", "Score: 0", "█", "▀", "▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
	// player at x 180..220 covers columns 9 and 10 in the two rows above the ground
	if screen.Get(9, 12) != '█' || screen.Get(10, 11) != '█' {
		t.Errorf("player not drawn at columns 9-10:\n%s", out)
	}
}

func TestRenderCrash(t *testing.T) {
	g := newGame(emptyWorld())
	g.dropAt(g.player.CenterX(), 30)
	idle(g, 100)

	screen := core.NewScreen(60, 15)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Squashed!") {
		t.Errorf("crash footer missing:\n%s", screen.String())
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(emptyWorld())
	screen := core.NewScreen(19, 6)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected the too-small message")
	}
}
