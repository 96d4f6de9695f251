package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagImportDir string
	flagClear     bool
	flagStats     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show highscores",
	Long: `Display the highscores of a level, fewest moves first.

Without a level an interactive scoreboard opens; Tab cycles through levels.

Examples:
  sokoban scores 01
  sokoban scores 01 --clear
  sokoban scores --import ./highscores   # import legacy <level>.txt files
  sokoban scores --stats                 # finishes and best moves per level
  sokoban scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagImportDir, "import", "", "Import legacy highscore files from a directory")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all highscores of the level")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show statistics for every level with scores")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(cfg.Scores.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagImportDir != "":
		importScores(store, flagImportDir)
	case flagStats:
		printStats(store)
	case len(args) == 0:
		browseScores(store)
	case flagClear:
		if err := store.ClearScores(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared highscores of %s\n", args[0])
	default:
		printScores(store, args[0])
	}
}

func printScores(store *storage.Store, levelID string) {
	scores, err := store.TopScores(levelID, cfg.Scores.Top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Highscores - %s\n", levelID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println(tui.NoScoresText)
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first highscore!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Name", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-6d  %s\n", i+1, entry.Name, entry.Moves, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetLevelStats(levelID); err == nil && stats != nil {
		fmt.Printf("Best: %d  Average: %.1f  Finishes: %d\n", stats.BestMoves, stats.AvgMoves, stats.Finishes)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println(tui.NoScoresText)
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-8s  %-5s  %-7s  %s\n", "Level", "Finishes", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %-8s  %-5s  %-7s  %s\n", "-----", "--------", "----", "-------", "-----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-12s  %-8d  %-5d  %-7.1f  %s\n",
			id, st.Finishes, st.BestMoves, st.AvgMoves, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func importScores(store *storage.Store, dir string) {
	counts, err := store.ImportLegacyDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing scores: %v\n", err)
		os.Exit(1)
	}
	if len(counts) == 0 {
		fmt.Printf("No highscore files found in %s\n", dir)
		return
	}

	total := 0
	for levelID, n := range counts {
		fmt.Printf("  %-12s  %d entries\n", levelID, n)
		total += n
	}
	fmt.Printf("Imported %d entries for %d levels\n", total, len(counts))
}

func browseScores(store *storage.Store) {
	lib, err := openLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	lvls := lib.Levels()
	ids := make([]string, len(lvls))
	for i, lvl := range lvls {
		ids[i] = lvl.ID
	}

	rc := terminalConfig()
	if err := tui.RunScoreboard(store, ids, cfg.Scores.Top, rc.ScreenW, rc.ScreenH); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		os.Exit(1)
	}
}
