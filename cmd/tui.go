package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/navigation"
	"github.com/desertthunder/pseudology/internal/shared"
	"github.com/desertthunder/pseudology/internal/ui"
)

// TUI launches the interactive archive browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	seed, err := seedValue(cmd)
	if err != nil {
		return err
	}

	start, err := navigation.ParseView(cmd.String("view"))
	if err != nil {
		return err
	}
	if !start.IsTopLevel() {
		return fmt.Errorf("%w: %s is not a top-level view", shared.ErrInvalidView, start)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	sessionID := shared.GenerateID()
	model := ui.NewModel(ctx, ui.Options{
		Provider:  r.source(),
		Logger:    shared.WithLogger(fileLogger, "session", sessionID),
		SessionID: sessionID,
		Seed:      r.seed(seed),
		Start:     start,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
