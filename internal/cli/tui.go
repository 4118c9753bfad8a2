package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tridiary/tridiary/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	m := tui.NewModel(ctx.Store)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
