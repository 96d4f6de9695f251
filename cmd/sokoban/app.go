package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// localPackID is the registry ID of the --levels directory.
const localPackID = "local"

var (
	cfg    config.Config
	logger *log.Logger
)

// setup loads the configuration, applies flag overrides and registers the
// local level directory.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Scores.DB = flagDBPath
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           cfg.LogLevel(),
	})

	if cfg.Levels.Dir != "" && !registry.Exists(localPackID) {
		dir, err := storage.ExpandHome(cfg.Levels.Dir)
		if err != nil {
			return err
		}
		if err := registry.RegisterDir(localPackID, "Local levels", dir); err != nil {
			return err
		}
	}
	return nil
}

// openLibrary loads every registered pack. User packs come first so their
// levels shadow built-in levels with the same ID.
func openLibrary() (*levels.Library, error) {
	var sources []levels.Source
	for _, info := range registry.List() {
		pack, err := registry.Create(info.ID)
		if err != nil {
			return nil, err
		}

		loader := levels.NewLoader(pack.FS())
		loader.MaxWidth = cfg.Levels.MaxWidth
		loader.MaxHeight = cfg.Levels.MaxHeight
		loader.Logger = logger.With("pack", info.ID)

		src := levels.Source{Pack: info.ID, Loader: loader, Dir: pack.Dir()}
		if src.Dir != "" {
			sources = append([]levels.Source{src}, sources...)
		} else {
			sources = append(sources, src)
		}
	}
	return levels.NewLibrary(logger, sources...)
}

// openStore opens the scores database. A failure is logged and play
// continues without highscores.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Scores.DB)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// sessionOptions builds the session template from the configuration.
func sessionOptions(lib *levels.Library, store *storage.Store) tui.Options {
	return tui.Options{
		Store:    store,
		Library:  lib,
		Theme:    game.ThemeFromConfig(cfg.Theme),
		PageSize: cfg.Levels.PageSize,
		ThumbW:   cfg.Levels.MaxWidth,
		ThumbH:   cfg.Levels.MaxHeight,
		Top:      cfg.Scores.Top,
		Logger:   logger,
	}
}

// terminalConfig returns the current terminal size, 80x24 if unknown.
func terminalConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	return rc
}

// redirectLogs sends logs to ~/.sokoban/sokoban.log while a local TUI owns
// the terminal. The returned function restores stderr logging.
func redirectLogs() func() {
	path, err := storage.ExpandHome(filepath.Join("~", ".sokoban", "sokoban.log"))
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

// errUnknownLevel formats the error for a level ID not in the library.
func errUnknownLevel(id string) error {
	return fmt.Errorf("unknown level %q (run 'sokoban list' to see available levels)", id)
}
