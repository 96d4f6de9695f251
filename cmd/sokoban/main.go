// sokoban is a terminal Sokoban game with per-level highscores.
//
// Usage:
//
//	sokoban list              - List level packs and levels
//	sokoban play <level>      - Play a level directly
//	sokoban menu              - Start the main menu
//	sokoban serve             - Start SSH server for remote play
//	sokoban scores [level]    - Show highscores
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.sokoban/sokoban.yaml)
//	--db <path>         - Scores database (default: ~/.sokoban/scores.db)
//	--levels <dir>      - Extra level directory
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the built-in pack to register it
	_ "github.com/vovakirdan/tui-sokoban/internal/levels/builtin"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLevels   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push crates onto targets in your terminal",
	Long: `Sokoban is a terminal puzzle game. Push every crate onto a target
in as few moves as possible; the best runs make it onto the highscores.

Available commands:
  list     - Show level packs and levels
  play     - Play a specific level directly
  menu     - Main menu with level selector
  serve    - Start SSH server for remote play
  scores   - View or import highscores

Examples:
  sokoban list
  sokoban play 01
  sokoban menu --levels ./my-levels
  sokoban serve
  sokoban scores 01`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Extra level directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
