package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its ID and play mode.`,
	RunE:  runList,
}

var (
	headerColor = color.New(color.Bold)
	idColor     = color.New(color.FgCyan)
	dimColor    = color.New(color.Faint)
)

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	rows := [][3]string{{"ID", "Title", "Mode"}}
	for _, g := range games {
		rows = append(rows, [3]string{g.ID, g.Title, multiplayer.ModeForGame(g.ID, g.TwoPlayer).String()})
	}
	var w [3]int
	for _, r := range rows {
		for i, cell := range r {
			w[i] = max(w[i], len(cell))
		}
	}

	headerColor.Println("Available games:")
	fmt.Println()
	for i, r := range rows {
		id := fmt.Sprintf("%-*s", w[0], r[0])
		rest := fmt.Sprintf("%-*s  %s", w[1], r[1], r[2])
		if i == 0 {
			headerColor.Printf("  %s  %s\n", id, rest)
			continue
		}
		fmt.Printf("  %s  %s\n", idColor.Sprint(id), rest)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	dimColor.Println("Online Connect Four is played through 'arcade serve'.")
	return nil
}
