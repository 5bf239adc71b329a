// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"fmt"
	"strings"
)

// Connect4Config contains all configuration for Connect Four.
type Connect4Config struct {
	Board   Connect4Board   `yaml:"board"`
	CPU     Connect4CPU     `yaml:"cpu"`
	Scoring Connect4Scoring `yaml:"scoring"`
}

// Connect4Board defines the board size.
type Connect4Board struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Connect4CPU defines the computer opponent.
type Connect4CPU struct {
	Difficulty string `yaml:"difficulty"`  // "easy", "normal" or "hard"
	Depth      int    `yaml:"depth"`       // minimax search depth
	ThinkTicks int    `yaml:"think_ticks"` // delay before the CPU drops
}

// Connect4Scoring defines how a finished game is scored.
type Connect4Scoring struct {
	WinPoints int `yaml:"win_points"`
	MoveBonus int `yaml:"move_bonus"` // per empty cell left on the board
}

// Board size limits accepted by Validate.
const (
	MinBoardSize = 4
	MaxBoardSize = 16
)

// Validate checks the board dimensions and CPU settings.
func (c Connect4Config) Validate() error {
	if c.Board.Rows < MinBoardSize || c.Board.Rows > MaxBoardSize {
		return fmt.Errorf("config: board.rows %d out of range [%d, %d]", c.Board.Rows, MinBoardSize, MaxBoardSize)
	}
	if c.Board.Cols < MinBoardSize || c.Board.Cols > MaxBoardSize {
		return fmt.Errorf("config: board.cols %d out of range [%d, %d]", c.Board.Cols, MinBoardSize, MaxBoardSize)
	}
	switch c.CPU.Difficulty {
	case "easy", "normal", "hard":
	default:
		return fmt.Errorf("config: unknown cpu.difficulty %q", c.CPU.Difficulty)
	}
	if c.CPU.Depth < 0 || c.CPU.ThinkTicks < 0 {
		return fmt.Errorf("config: cpu depth and think_ticks must not be negative")
	}
	return nil
}

// MazeConfig contains all configuration for the maze games.
type MazeConfig struct {
	Layout           []string         `yaml:"layout"` // rows of '1' (wall) and '0' (open)
	CellSize         float64          `yaml:"cell_size"`
	MoveSpeed        float64          `yaml:"move_speed"`
	TurnSpeed        float64          `yaml:"turn_speed"` // radians per turn input
	CollisionPadding float64          `yaml:"collision_padding"`
	Pursuer          MazePursuer      `yaml:"pursuer"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
}

// MazePursuer defines the chaser in maze_pursuer.
type MazePursuer struct {
	StepTicks    int `yaml:"step_ticks"`     // ticks between chaser steps at level 0
	MinStepTicks int `yaml:"min_step_ticks"` // ticks between steps at max difficulty
	GraceTicks   int `yaml:"grace_ticks"`    // ticks before the chaser starts moving
}

// Validate checks that the layout is rectangular and made of walls and floors,
// with at least one open cell.
func (c MazeConfig) Validate() error {
	if len(c.Layout) == 0 {
		return fmt.Errorf("config: maze layout is empty")
	}
	width := len(c.Layout[0])
	open := 0
	for i, row := range c.Layout {
		if len(row) != width {
			return fmt.Errorf("config: maze row %d has width %d, expected %d", i, len(row), width)
		}
		if strings.Trim(row, "01") != "" {
			return fmt.Errorf("config: maze row %d contains characters other than 0 and 1", i)
		}
		open += strings.Count(row, "0")
	}
	if open == 0 {
		return fmt.Errorf("config: maze has no open cells")
	}
	if c.CellSize <= 0 || c.MoveSpeed <= 0 {
		return fmt.Errorf("config: cell_size and move_speed must be positive")
	}
	if c.CollisionPadding < 0 || c.CollisionPadding >= c.CellSize/2 {
		return fmt.Errorf("config: collision_padding must be in [0, cell_size/2)")
	}
	return nil
}

// PlatformerConfig contains all configuration for the side-scroller. World
// units grow rightward from the left wall and upward from the ground.
type PlatformerConfig struct {
	World      PlatformerWorld     `yaml:"world"`
	Player     PlatformerPlayer    `yaml:"player"`
	Platforms  []Box               `yaml:"platforms"`
	Crates     []Box               `yaml:"crates"` // fall at start, then block like platforms
	Obstacles  PlatformerObstacles `yaml:"obstacles"`
	Difficulty DifficultyConfig    `yaml:"difficulty"`
}

// PlatformerWorld sets the world size and how it maps to terminal cells.
type PlatformerWorld struct {
	Width        float64 `yaml:"width"`
	Gravity      float64 `yaml:"gravity"`        // units per tick per tick
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // units per tick
	UnitsPerCol  float64 `yaml:"units_per_col"`
	UnitsPerRow  float64 `yaml:"units_per_row"`
}

// PlatformerPlayer defines the player's body and movement.
type PlatformerPlayer struct {
	StartX    float64 `yaml:"start_x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MoveForce float64 `yaml:"move_force"` // speed added per Left/Right input
	MaxSpeed  float64 `yaml:"max_speed"`
	Friction  float64 `yaml:"friction"` // horizontal speed kept per tick without input
	JumpSpeed float64 `yaml:"jump_speed"`
}

// Box is an axis-aligned rectangle in world units; Y is its bottom edge.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlatformerObstacles defines the falling hazards.
type PlatformerObstacles struct {
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	Max          int     `yaml:"max"`            // oldest are dropped past this
	StepTicks    int     `yaml:"step_ticks"`     // ticks between automatic drops at level 0, 0 disables them
	MinStepTicks int     `yaml:"min_step_ticks"` // ticks between drops at max difficulty
}

// Validate checks the world, the player and every box.
func (c PlatformerConfig) Validate() error {
	w := c.World
	if w.Width <= 0 || w.UnitsPerCol <= 0 || w.UnitsPerRow <= 0 {
		return fmt.Errorf("config: world width and units per cell must be positive")
	}
	if w.Gravity <= 0 || w.MaxFallSpeed <= 0 {
		return fmt.Errorf("config: gravity and max_fall_speed must be positive")
	}
	p := c.Player
	if p.Width <= 0 || p.Height <= 0 || p.Width > w.Width {
		return fmt.Errorf("config: player size must be positive and fit the world")
	}
	if p.StartX < 0 || p.StartX+p.Width > w.Width {
		return fmt.Errorf("config: player start_x %.0f outside the world", p.StartX)
	}
	if p.MaxSpeed <= 0 || p.JumpSpeed <= 0 || p.Friction < 0 || p.Friction > 1 {
		return fmt.Errorf("config: player speeds must be positive and friction in [0, 1]")
	}
	for i, b := range append(append([]Box(nil), c.Platforms...), c.Crates...) {
		if b.W <= 0 || b.H <= 0 || b.Y < 0 {
			return fmt.Errorf("config: box %d needs a positive size and y >= 0", i)
		}
	}
	o := c.Obstacles
	if o.MinSize <= 0 || o.MaxSize < o.MinSize || o.Max < 1 {
		return fmt.Errorf("config: obstacle sizes must satisfy 0 < min_size <= max_size and max >= 1")
	}
	if o.StepTicks < 0 || o.MinStepTicks < 0 {
		return fmt.Errorf("config: obstacle step ticks must not be negative")
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "" and false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
