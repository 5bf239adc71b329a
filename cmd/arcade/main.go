// arcade is a terminal arcade built around Connect Four and maze games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH and web servers for remote play
//	arcade scores [game]     - Show high scores and match history
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/arcade.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//
// A .env file in the working directory is loaded at startup. ARCADE_DB,
// ARCADE_LOG_LEVEL, ARCADE_SSH_ADDR and ARCADE_HTTP_ADDR override the
// matching flag defaults.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/sketch-arcade/internal/games/connect4"
	_ "github.com/vovakirdan/sketch-arcade/internal/games/maze"
	_ "github.com/vovakirdan/sketch-arcade/internal/games/platformer"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Terminal arcade - Connect Four and mazes in your terminal",
	Long: `A terminal arcade with Connect Four (hotseat, vs CPU and online)
and maze games, playable locally, over SSH or from a browser.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH and web servers for remote play
  scores   - View high scores and match history

Examples:
  arcade list
  arcade play connect4
  arcade play connect4_cpu --difficulty hard
  arcade menu
  arcade serve --ssh :2222 --http :8080
  arcade scores connect4`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies environment overrides and the log level.
func setup(cmd *cobra.Command, _ []string) error {
	envOverride(cmd, "db", "ARCADE_DB", &flagDBPath)
	envOverride(cmd, "log-level", "ARCADE_LOG_LEVEL", &flagLogLevel)
	envOverride(cmd, "ssh", "ARCADE_SSH_ADDR", &flagSSHAddr)
	envOverride(cmd, "http", "ARCADE_HTTP_ADDR", &flagHTTPAddr)

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// envOverride sets *dst from env unless the flag was given explicitly.
func envOverride(cmd *cobra.Command, flag, env string, dst *string) {
	f := cmd.Flags().Lookup(flag)
	if f == nil || f.Changed {
		return
	}
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// openStore opens the database, logging instead of failing so games stay
// playable without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
