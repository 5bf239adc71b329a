package core

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // ticks per second
	Seed     int64 // zero lets the platform pick one
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a game the platform cares about between ticks.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is what Step returns after a tick.
type StepResult struct {
	State GameState
}

// Outcome is how a two-player game ended.
type Outcome struct {
	Winner PlayerID // PlayerNone on a draw or while undecided
	Draw   bool
	Moves  int
	Record string // move list in the game's own notation
}
