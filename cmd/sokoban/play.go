package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a specific level",
	Long: `Start a level directly, skipping the menu.

When the level is solved you can enter your name for the highscores.
Press ESC at any time to return to the main menu.

Examples:
  sokoban play 01
  sokoban play mylevel --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]

	restore := redirectLogs()
	defer restore()

	lib, err := openLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if _, ok := lib.Get(levelID); !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errUnknownLevel(levelID))
		os.Exit(1)
	}

	opts := sessionOptions(lib, nil)
	opts.StartLevel = levelID
	if err := runSession(lib, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// runSession runs a local session while the library watches level
// directories for changes.
func runSession(lib *levels.Library, opts tui.Options) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	opts.Store = store

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := lib.Watch(ctx); err != nil {
			logger.Warn("level watcher stopped", "error", err)
		}
	}()

	return tui.Run(opts, terminalConfig())
}
