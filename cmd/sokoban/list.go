package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and levels",
	Long:  `Display every registered level pack and the playable levels it provides.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	lib, err := openLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	lvls := lib.Levels()

	best := map[string]int{}
	if store := openStore(); store != nil {
		for _, lvl := range lvls {
			if moves, ok, err := store.BestScore(lvl.ID); err == nil && ok {
				best[lvl.ID] = moves
			}
		}
		store.Close()
	}

	fmt.Println("Level packs:")
	fmt.Println()
	for _, info := range registry.List() {
		count := 0
		for _, lvl := range lvls {
			if lvl.Pack == info.ID {
				count++
			}
		}
		fmt.Printf("  %-10s  %-20s  %d levels\n", info.ID, info.Title, count)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-12s  %-10s  %-7s  %s\n", "ID", "Pack", "Size", "Best")
	fmt.Printf("  %-12s  %-10s  %-7s  %s\n", "--", "----", "----", "----")
	for _, lvl := range lvls {
		bestStr := "-"
		if moves, ok := best[lvl.ID]; ok {
			bestStr = fmt.Sprintf("%d", moves)
		}
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		fmt.Printf("  %-12s  %-10s  %-7s  %s\n", lvl.ID, lvl.Pack, size, bestStr)
	}

	fmt.Println()
	fmt.Println("Usage: sokoban play <level>")
}
