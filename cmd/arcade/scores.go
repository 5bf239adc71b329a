package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

const matchHistoryLimit = 10

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and match history",
	Long: `Without arguments, prints a summary of every game played.

For single-player games prints the top 10 scores. For two-player games
prints the last 10 matches and each player's record.

Examples:
  arcade scores
  arcade scores maze_pursuer
  arcade scores connect4_online`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var (
	winColor  = color.New(color.FgGreen)
	drawColor = color.New(color.FgYellow)
)

func runScores(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		gameID := args[0]
		if gameID != tui.OnlineGameID && !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
		}
	}

	store := openStore()
	if store == nil {
		return errors.New("scores database is unavailable")
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	if isTwoPlayer(gameID) {
		return printMatches(store, gameID)
	}
	return printTopScores(store, gameID)
}

func isTwoPlayer(gameID string) bool {
	if gameID == tui.OnlineGameID {
		return true
	}
	info, ok := registry.Info(gameID)
	return ok && info.TwoPlayer
}

func printSummary(store *storage.Store) error {
	summary, err := store.Summary()
	if err != nil {
		return fmt.Errorf("cannot load stats: %w", err)
	}
	if len(summary) == 0 {
		fmt.Println("No scores yet. Play some games!")
	} else {
		headerColor.Printf("  %-16s  %6s  %6s  %8s  %s\n", "Game", "Played", "Best", "Average", "Last Played")
		for _, g := range summary {
			fmt.Printf("  %s  %6d  %6d  %8.1f  %s\n",
				idColor.Sprintf("%-16s", g.GameID),
				g.Played, g.Best, g.Average,
				g.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
	}

	matches, err := store.RecentMatches("", matchHistoryLimit)
	if err != nil {
		return fmt.Errorf("cannot load matches: %w", err)
	}
	if len(matches) > 0 {
		fmt.Println()
		fmt.Printf("%d recent matches, run 'arcade scores <game>' for details.\n", len(matches))
	}
	return nil
}

func printTopScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot load scores: %w", err)
	}

	headerColor.Printf("High scores for %s:\n", gameID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("  No scores yet. Play some games!")
		return nil
	}

	fmt.Printf("  %-4s  %8s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %8s  %s\n", "----", "-----", "----")
	for i, s := range scores {
		line := fmt.Sprintf("  %-4d  %8d  %s", i+1, s.Score, s.CreatedAt.Local().Format("2006-01-02 15:04"))
		if i == 0 {
			winColor.Println(line)
			continue
		}
		fmt.Println(line)
	}
	return nil
}

func printMatches(store *storage.Store, gameID string) error {
	matches, err := store.RecentMatches(gameID, matchHistoryLimit)
	if err != nil {
		return fmt.Errorf("cannot load matches: %w", err)
	}

	headerColor.Printf("Recent matches for %s:\n", gameID)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("  No matches yet.")
		return nil
	}

	players := make(map[string]bool)
	for _, m := range matches {
		result := matchResult(m)
		line := fmt.Sprintf("  %-12s vs %-12s  %-20s  %3d moves  %s",
			m.Player1, m.Player2, result, m.Moves,
			m.CreatedAt.Local().Format("2006-01-02 15:04"))
		if m.Draw {
			drawColor.Println(line)
		} else {
			fmt.Println(line)
		}
		players[m.Player1] = true
		players[m.Player2] = true
	}

	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	headerColor.Printf("  %-12s  %4s  %6s  %5s\n", "Player", "Wins", "Losses", "Draws")
	for _, name := range names {
		rec, err := store.PlayerRecord(name)
		if err != nil {
			return fmt.Errorf("cannot load record for %s: %w", name, err)
		}
		fmt.Printf("  %s  %4d  %6d  %5d\n",
			idColor.Sprintf("%-12s", name), rec.Wins, rec.Losses, rec.Draws)
	}
	return nil
}

func matchResult(m storage.MatchRecord) string {
	switch {
	case m.Draw:
		return "Draw"
	case m.Winner == 1:
		return m.Player1 + " won"
	case m.Winner == 2:
		return m.Player2 + " won"
	default:
		return m.EndReason
	}
}
