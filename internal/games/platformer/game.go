// Package platformer implements a side-scrolling run across a walled world
// with platforms, crates and obstacles dropped from above.
package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// finishBonus is added to the score when the player reaches the far wall.
const finishBonus = 100

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard", "fixed").
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// Game is the side-scroller.
type Game struct {
	cfg      config.PlatformerConfig
	override *config.PlatformerConfig
	diff     *config.DifficultyManager
	rng      *rand.Rand

	player   rect
	vx, vy   float64
	grounded bool
	furthest float64

	platforms []rect
	crates    []body
	obstacles []body
	dropIn    int // ticks since the last automatic drop

	camera     core.Axis
	cols, rows int // play area in cells
	runtime    core.RuntimeConfig
	tick       int
	score      int
	crashed    bool
	finished   bool
	paused     bool
}

// New creates a side-scroller.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("platformer", func() registry.Game {
		return New()
	})
}

// WithConfig pins the configuration used by every later Reset instead of
// loading it from disk.
func (g *Game) WithConfig(cfg config.PlatformerConfig) *Game {
	g.override = &cfg
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return "platformer" }

// Title returns the display name.
func (g *Game) Title() string { return "Side Scroller" }

// Reset builds the world and stands the player at the start position.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadPlatformer(configPath)
		if err != nil {
			cfg = config.DefaultPlatformerConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPlatformerPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.tick, g.score, g.dropIn = 0, 0, 0
	g.crashed, g.finished, g.paused = false, false, false

	g.platforms = g.platforms[:0]
	for _, b := range g.cfg.Platforms {
		g.platforms = append(g.platforms, fromBox(b))
	}
	g.crates = g.crates[:0]
	for _, b := range g.cfg.Crates {
		g.crates = append(g.crates, body{rect: fromBox(b)})
	}
	g.obstacles = nil

	p := g.cfg.Player
	g.player = rect{X: p.StartX, W: p.Width, H: p.Height}
	g.vx, g.vy = 0, 0
	g.settlePlayer()
	g.furthest = g.player.X

	g.camera = core.NewAxis()
	g.cols, g.rows = viewSize(runtime.ScreenW, runtime.ScreenH)
	g.camera.Snap(g.player.CenterX(), g.viewW(), 0, g.cfg.World.Width)
}

// settlePlayer lifts a player placed inside a platform onto its top.
func (g *Game) settlePlayer() {
	for moved := true; moved; {
		moved = false
		for _, s := range g.solids() {
			if g.player.Overlaps(s) {
				g.player.Y = s.Top()
				moved = true
			}
		}
	}
	g.grounded = true
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if g.over() {
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	w := g.cfg.World
	for i := range g.crates {
		g.crates[i].fall(w.Gravity, w.MaxFallSpeed, g.restingExcept(g.crates, i))
	}

	g.movePlayer(input)

	if input.Has(core.ActionSpawn) {
		g.dropObstacle()
	}
	g.autoDrop()
	for i := range g.obstacles {
		solids := append(g.solids(), g.restingExcept(g.obstacles, i)...)
		g.obstacles[i].fall(w.Gravity, w.MaxFallSpeed, solids)
	}
	for _, o := range g.obstacles {
		if o.Overlaps(g.player) {
			g.crashed = true
		}
	}

	g.furthest = max(g.furthest, g.player.X)
	if g.player.Right() >= w.Width {
		g.finished = true
	}
	g.updateScore()

	g.camera.Follow(g.player.CenterX(), g.viewW(), 0, w.Width)
	return core.StepResult{State: g.State()}
}

// movePlayer applies input and gravity, then resolves collisions one axis
// at a time: x against the walls and solids, then y against the ground
// and solids.
func (g *Game) movePlayer(input core.InputFrame) {
	p := g.cfg.Player
	left, right := input.Has(core.ActionLeft), input.Has(core.ActionRight)
	switch {
	case left && !right:
		g.vx -= p.MoveForce
	case right && !left:
		g.vx += p.MoveForce
	default:
		g.vx *= p.Friction
		if math.Abs(g.vx) < 0.01 {
			g.vx = 0
		}
	}
	g.vx = max(-p.MaxSpeed, min(p.MaxSpeed, g.vx))

	if (input.Has(core.ActionUp) || input.Has(core.ActionDrop)) && g.grounded {
		g.vy = p.JumpSpeed
	}
	g.vy = max(g.vy-g.cfg.World.Gravity, -g.cfg.World.MaxFallSpeed)

	solids := g.solids()

	g.player.X += g.vx
	if g.player.X < 0 {
		g.player.X, g.vx = 0, 0
	}
	if limit := g.cfg.World.Width - g.player.W; g.player.X > limit {
		g.player.X, g.vx = limit, 0
	}
	for _, s := range solids {
		if !g.player.Overlaps(s) {
			continue
		}
		if g.vx > 0 {
			g.player.X = s.X - g.player.W
		} else if g.vx < 0 {
			g.player.X = s.Right()
		}
		g.vx = 0
	}

	g.player.Y += g.vy
	g.grounded = false
	if g.player.Y <= 0 {
		g.player.Y, g.vy, g.grounded = 0, 0, true
	}
	for _, s := range solids {
		if !g.player.Overlaps(s) {
			continue
		}
		if g.vy < 0 {
			g.player.Y = s.Top()
			g.grounded = true
		} else {
			g.player.Y = s.Y - g.player.H
		}
		g.vy = 0
	}
}

// solids are the surfaces the player stands on: platforms and crates.
func (g *Game) solids() []rect {
	out := make([]rect, 0, len(g.platforms)+len(g.crates))
	out = append(out, g.platforms...)
	for _, c := range g.crates {
		out = append(out, c.rect)
	}
	return out
}

// restingExcept returns the platforms plus every resting body in bodies
// other than bodies[skip].
func (g *Game) restingExcept(bodies []body, skip int) []rect {
	out := append([]rect(nil), g.platforms...)
	for i, b := range bodies {
		if i != skip && b.resting {
			out = append(out, b.rect)
		}
	}
	return out
}

// dropObstacle releases an obstacle from the top of the view within a
// quarter view of the camera center.
func (g *Game) dropObstacle() {
	o := g.cfg.Obstacles
	size := o.MinSize + g.rng.Float64()*(o.MaxSize-o.MinSize)
	center := g.camera.Offset + g.viewW()/2
	x := center + (g.rng.Float64()*2-1)*g.viewW()/4
	g.dropAt(x, size)
}

// dropAt releases a size x size obstacle centered on x.
func (g *Game) dropAt(x, size float64) {
	left := max(0, min(g.cfg.World.Width-size, x-size/2))
	top := max(g.viewH(), g.player.Top()+size)
	g.obstacles = append(g.obstacles, body{rect: rect{X: left, Y: top, W: size, H: size}})
	if extra := len(g.obstacles) - g.cfg.Obstacles.Max; extra > 0 {
		g.obstacles = append(g.obstacles[:0], g.obstacles[extra:]...)
	}
}

// autoDrop releases obstacles on a timer that shortens with difficulty.
func (g *Game) autoDrop() {
	o := g.cfg.Obstacles
	if o.StepTicks <= 0 {
		return
	}
	g.dropIn++
	if g.dropIn >= g.diff.Interval(o.StepTicks, o.MinStepTicks, g.score, g.tick) {
		g.dropIn = 0
		g.dropObstacle()
	}
}

func (g *Game) updateScore() {
	g.score = int((g.furthest - g.cfg.Player.StartX) / 10)
	g.score = max(g.score, 0)
	if g.finished {
		g.score += finishBonus
	}
}

func (g *Game) over() bool {
	return g.crashed || g.finished
}

// Player returns the player's box as x, y (bottom edge), width, height.
func (g *Game) Player() (x, y, w, h float64) {
	return g.player.X, g.player.Y, g.player.W, g.player.H
}

// Velocity returns the player's horizontal and vertical speed.
func (g *Game) Velocity() (vx, vy float64) { return g.vx, g.vy }

// Grounded reports whether the player stood on the ground or a solid after
// the last tick, which is the only time a jump is allowed.
func (g *Game) Grounded() bool { return g.grounded }

// CameraOffset returns the world x at the left edge of the view.
func (g *Game) CameraOffset() float64 { return g.camera.Offset }

// Obstacles returns how many obstacles are in the world.
func (g *Game) Obstacles() int { return len(g.obstacles) }

// Crashed reports whether an obstacle hit the player.
func (g *Game) Crashed() bool { return g.crashed }

// Finished reports whether the player reached the far wall.
func (g *Game) Finished() bool { return g.finished }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over(),
		Paused:   g.paused,
	}
}
