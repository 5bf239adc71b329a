package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/connect4.yaml
var defaultConnect4YAML []byte

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultMazeLayout is the 10x10 maze shipped with the game.
var DefaultMazeLayout = []string{
	"1111111111",
	"1000100001",
	"1010101101",
	"1010000101",
	"1011110101",
	"1000010001",
	"1110011101",
	"1000000001",
	"1011110111",
	"1111111111",
}

// DefaultConnect4Config returns the default Connect Four configuration.
func DefaultConnect4Config() Connect4Config {
	return Connect4Config{
		Board: Connect4Board{Rows: 6, Cols: 7},
		CPU: Connect4CPU{
			Difficulty: "normal",
			Depth:      4,
			ThinkTicks: 20,
		},
		Scoring: Connect4Scoring{
			WinPoints: 100,
			MoveBonus: 5,
		},
	}
}

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Layout:           append([]string(nil), DefaultMazeLayout...),
		CellSize:         50,
		MoveSpeed:        12.5,
		TurnSpeed:        math.Pi / 4,
		CollisionPadding: 5,
		Pursuer: MazePursuer{
			StepTicks:    45,
			MinStepTicks: 12,
			GraceTicks:   120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200, // 2 minutes at 60fps
			},
		},
	}
}

// DefaultPlatformerConfig returns the default side-scroller: an 8000 unit
// world with five platforms and two crates.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: PlatformerWorld{
			Width:        8000,
			Gravity:      0.6,
			MaxFallSpeed: 15,
			UnitsPerCol:  20,
			UnitsPerRow:  30,
		},
		Player: PlatformerPlayer{
			StartX:    180,
			Width:     40,
			Height:    60,
			MoveForce: 1.5,
			MaxSpeed:  5,
			Friction:  0.85,
			JumpSpeed: 12,
		},
		Platforms: []Box{
			{X: 500, Y: 75, W: 200, H: 30},
			{X: 1025, Y: 175, W: 150, H: 30},
			{X: 1675, Y: 45, W: 250, H: 30},
			{X: 2650, Y: 90, W: 100, H: 100},
			{X: 3300, Y: 225, W: 400, H: 30},
		},
		Crates: []Box{
			{X: 775, Y: 400, W: 50, H: 50},
			{X: 2170, Y: 300, W: 60, H: 60},
		},
		Obstacles: PlatformerObstacles{
			MinSize:      20,
			MaxSize:      40,
			Max:          32,
			StepTicks:    180,
			MinStepTicks: 45,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "connect4", "connect4_cpu":
		return defaultConnect4YAML
	case "maze", "maze_pursuer":
		return defaultMazeYAML
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
