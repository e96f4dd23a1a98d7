package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/desertthunder/wayfarer/internal/ui"
	"github.com/urfave/cli/v3"
)

// Watch launches the interactive itinerary watcher. Logs are redirected to a
// file and notifier output is muted so bubbletea owns the terminal.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	logger, err := shared.NewFileLogger("./tmp/wayfarer-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create TUI logger: %w", err)
	}
	r.SetLogger(logger)
	r.notifier.SetQuiet(true)
	defer r.notifier.SetQuiet(false)

	model := ui.NewModel(ctx, r.api, r.store, r.tracker)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}

	r.tracker.CancelAll()
	return nil
}
