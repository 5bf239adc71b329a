package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game from an interactive menu",
	Long: `Opens the game picker. Esc inside a game comes back here.

Keys:
  up/down, j/k   move
  enter, space   play the highlighted game
  tab            scoreboard
  q              quit

Examples:
  arcade menu
  arcade menu --fps 30 --difficulty hard
  arcade menu --db ./arcade.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = choice.Config

		var again bool
		switch {
		case choice.Quit, choice.GameID == "" && !choice.WantsScoreboard:
			return nil

		case choice.WantsScoreboard:
			again, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)

		default:
			applyGameFlags(choice.GameID)
			game, cerr := registry.Create(choice.GameID)
			if cerr != nil {
				logger.Error("cannot create game", "game", choice.GameID, "error", cerr)
				continue
			}
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			again, err = tui.Run(game, store, cfg)
		}

		if err != nil || !again {
			return err
		}
	}
}
