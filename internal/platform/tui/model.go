// Package tui provides the Bubble Tea integration for the Sokoban platform.
// It handles the terminal UI loop, input mapping, and screen orchestration.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Run starts a local session in the terminal and blocks until it ends.
func Run(opts Options, cfg core.RuntimeConfig) error {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	opts.Context = ctx

	model := NewSessionModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
