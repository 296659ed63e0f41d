package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/Veraticus/sift/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the viewer for res and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, res *pipeline.Result, theme themes.Theme) error {
	if res == nil || !res.Found() {
		return fmt.Errorf("no table to view")
	}

	p := tea.NewProgram(New(res, theme),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
