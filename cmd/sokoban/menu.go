package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Open the main menu.

From the menu you can pick a level in the selector, continue the loaded
level and browse the highscores.

Controls:
  Arrows/WASD   Move
  Enter/Space   Select
  R             Restart level
  ESC           Back to menu
  Ctrl+C        Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	restore := redirectLogs()
	defer restore()

	lib, err := openLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if err := runSession(lib, sessionOptions(lib, nil)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}
}
