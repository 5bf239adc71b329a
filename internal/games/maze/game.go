// Package maze implements a top-down maze walk and a chase variant in
// which a pursuer follows the shortest path toward the player.
package maze

import (
	"math"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// Mode selects the maze variant.
type Mode int

const (
	ModeWalker  Mode = iota // visit every open cell
	ModePursuer             // survive the chaser
)

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

// Game implements both maze variants.
type Game struct {
	mode     Mode
	cfg      config.MazeConfig
	override *config.MazeConfig
	grid     *Grid
	diff     *config.DifficultyManager

	pos   core.Vec2 // world units, cell size per cell
	angle float64   // radians, 0 faces +X

	visited map[Cell]bool
	goal    int // cells the walker must visit
	chaser  Cell
	chaseIn int // ticks since the chaser last moved

	camera       core.Camera2D
	viewW, viewH int

	runtime  core.RuntimeConfig
	tickRate int
	tick     int
	score    int
	won      bool
	caught   bool
	paused   bool
	invalid  bool // layout failed to parse
}

// New creates the walker variant.
func New() *Game {
	return &Game{mode: ModeWalker}
}

// NewPursuer creates the chase variant.
func NewPursuer() *Game {
	return &Game{mode: ModePursuer}
}

func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
	registry.Register("maze_pursuer", func() registry.Game {
		return NewPursuer()
	})
}

// WithConfig pins the configuration used by every later Reset instead of
// loading it from disk.
func (g *Game) WithConfig(cfg config.MazeConfig) *Game {
	g.override = &cfg
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePursuer {
		return "maze_pursuer"
	}
	return "maze"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePursuer {
		return "Maze Pursuit"
	}
	return "Maze Walker"
}

// Reset loads the maze and places the player at the start cell facing east.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadMaze(configPath)
		if err != nil {
			cfg = config.DefaultMazeConfig()
		}
		if difficultyPreset != "" {
			config.ApplyMazePreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.runtime = runtime
	g.tickRate = runtime.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick, g.score, g.chaseIn = 0, 0, 0
	g.won, g.caught, g.paused = false, false, false
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)

	grid, err := ParseGrid(g.cfg.Layout)
	if err != nil {
		grid, _ = ParseGrid(config.DefaultMazeLayout)
		g.invalid = true
	} else {
		g.invalid = false
	}
	g.grid = grid
	g.goal = grid.Reachable()

	start := grid.Start()
	g.pos = g.center(start)
	g.angle = 0
	g.visited = map[Cell]bool{}
	g.visit()

	if g.mode == ModePursuer {
		g.chaser = grid.Farthest(start)
	}

	g.camera = core.NewCamera2D()
	g.viewW, g.viewH = viewSize(runtime.ScreenW, runtime.ScreenH)
	g.camera.Snap(g.cameraTarget(), float64(g.viewW), float64(g.viewH), g.worldW(), g.worldH())
	g.updateScore()
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

	if input.Has(core.ActionLeft) {
		g.turn(-g.cfg.TurnSpeed)
	}
	if input.Has(core.ActionRight) {
		g.turn(g.cfg.TurnSpeed)
	}
	if input.Has(core.ActionUp) {
		g.move(1)
	}
	if input.Has(core.ActionDown) {
		g.move(-1)
	}
	g.visit()

	if g.mode == ModePursuer {
		g.stepChaser()
	}
	if g.mode == ModeWalker && len(g.visited) >= g.goal {
		g.won = true
	}
	g.updateScore()

	g.camera.Follow(g.cameraTarget(), float64(g.viewW), float64(g.viewH), g.worldW(), g.worldH())

	return core.StepResult{State: g.State()}
}

func (g *Game) turn(delta float64) {
	g.angle = math.Mod(g.angle+delta, 2*math.Pi)
	if g.angle < 0 {
		g.angle += 2 * math.Pi
	}
}

// move walks along the facing direction; dir is +1 forward, -1 backward.
func (g *Game) move(dir float64) {
	facing := core.FromAngle(g.angle)
	next := g.pos.Add(facing.Scale(dir * g.cfg.MoveSpeed))
	if g.canOccupy(next, dir) {
		g.pos = next
	}
}

// canOccupy checks the point collision_padding ahead of pos in the
// direction of travel.
func (g *Game) canOccupy(pos core.Vec2, dir float64) bool {
	probe := pos.Add(core.FromAngle(g.angle).Scale(dir * g.cfg.CollisionPadding))
	col, row := probe.Cell(g.cfg.CellSize)
	return !g.grid.IsWall(Cell{Col: col, Row: row})
}

func (g *Game) stepChaser() {
	if g.tick <= g.cfg.Pursuer.GraceTicks {
		g.checkCaught()
		return
	}
	g.chaseIn++
	interval := g.diff.Interval(g.cfg.Pursuer.StepTicks, g.cfg.Pursuer.MinStepTicks, g.score, g.tick)
	if g.chaseIn >= interval {
		g.chaseIn = 0
		if next, ok := g.grid.NextStep(g.chaser, g.PlayerCell()); ok {
			g.chaser = next
		}
	}
	g.checkCaught()
}

func (g *Game) checkCaught() {
	if g.chaser == g.PlayerCell() {
		g.caught = true
	}
}

func (g *Game) visit() {
	g.visited[g.PlayerCell()] = true
}

func (g *Game) updateScore() {
	g.score = len(g.visited)
	if g.mode == ModePursuer {
		g.score += g.tick / g.tickRate
	}
}

func (g *Game) center(c Cell) core.Vec2 {
	size := g.cfg.CellSize
	return core.Vec2{X: float64(c.Col)*size + size/2, Y: float64(c.Row)*size + size/2}
}

func (g *Game) over() bool {
	return g.won || g.caught
}

// PlayerCell returns the cell containing the player.
func (g *Game) PlayerCell() Cell {
	col, row := g.pos.Cell(g.cfg.CellSize)
	return Cell{Col: col, Row: row}
}

// Position returns the player's world position.
func (g *Game) Position() core.Vec2 { return g.pos }

// Angle returns the facing angle in radians, in [0, 2π).
func (g *Game) Angle() float64 { return g.angle }

// Chaser returns the pursuer's cell.
func (g *Game) Chaser() Cell { return g.chaser }

// Visited returns how many distinct open cells the player has entered.
func (g *Game) Visited() int { return len(g.visited) }

// Goal returns how many cells the walker has to visit: the open cells
// reachable from the start.
func (g *Game) Goal() int { return g.goal }

// Won reports whether every reachable cell has been visited.
func (g *Game) Won() bool { return g.won }

// Caught reports whether the pursuer reached the player.
func (g *Game) Caught() bool { return g.caught }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over(),
		Paused:   g.paused,
	}
}
