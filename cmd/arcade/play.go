package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/games/connect4"
	"github.com/vovakirdan/sketch-arcade/internal/games/maze"
	"github.com/vovakirdan/sketch-arcade/internal/games/platformer"
	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Connect Four controls:
  Left/Right   - Move the drop cursor
  Space/Enter  - Drop a piece
  R            - Restart
  P            - Pause
  Esc          - Back
  Q/Ctrl+C     - Quit

Maze controls:
  Up/Down      - Walk forward/back
  Left/Right   - Turn
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots

Side Scroller controls:
  Left/Right   - Run
  Up/Space     - Jump (only while standing)
  E            - Drop an obstacle

Difficulty options:
  easy   - Weaker CPU, slower chaser, fewer obstacles
  normal - Config defaults
  hard   - Deeper CPU search, faster chaser, more obstacles
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play connect4
  arcade play connect4_cpu --difficulty hard
  arcade play maze_pursuer --difficulty easy
  arcade play maze --config ./my-maze.yaml
  arcade play platformer --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig probes the terminal size for the runtime config.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// applyGameFlags hands --config and --difficulty to the game's package
// before it is created.
func applyGameFlags(gameID string) {
	switch gameID {
	case "connect4", "connect4_cpu":
		connect4.SetConfigPath(flagConfig)
		connect4.SetDifficultyPreset(flagDifficulty)
	case "maze", "maze_pursuer":
		maze.SetConfigPath(flagConfig)
		maze.SetDifficultyPreset(flagDifficulty)
	case "platformer":
		platformer.SetConfigPath(flagConfig)
		platformer.SetDifficultyPreset(flagDifficulty)
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	applyGameFlags(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}
