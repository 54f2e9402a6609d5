package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/tui"
)

// launchTUI runs the interactive task list until the user quits.
func launchTUI(c *app.Container, caller string) error {
	model := tui.New(c, caller)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
