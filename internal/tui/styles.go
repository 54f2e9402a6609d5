package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/tasktimer/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// State colors
	Idle      lipgloss.Color
	Running   lipgloss.Color
	Completed lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Idle:      lipgloss.Color("#74B9FF"), // Light blue
	Running:   lipgloss.Color("#FDCB6E"), // Yellow
	Completed: lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Task rows
	TaskID             lipgloss.Style
	TaskName           lipgloss.Style
	TaskNameSelected   lipgloss.Style
	Hours              lipgloss.Style
	Elapsed            lipgloss.Style
	SelectionIndicator lipgloss.Style
	StateIdle          lipgloss.Style
	StateRunning       lipgloss.Style
	StateCompleted     lipgloss.Style

	// Dialogs and messages
	InputPrompt   lipgloss.Style
	ConfirmDialog lipgloss.Style
	ErrorMsg      lipgloss.Style
	StatusMsg     lipgloss.Style
	Footer        lipgloss.Style
	SectionTitle  lipgloss.Style
	EmptyState    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			MarginBottom(1),
		HeaderText: lipgloss.NewStyle().Foreground(Colors.Muted),

		TaskID:             lipgloss.NewStyle().Foreground(Colors.Muted),
		TaskName:           lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		TaskNameSelected:   lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true),
		Hours:              lipgloss.NewStyle().Foreground(Colors.Secondary),
		Elapsed:            lipgloss.NewStyle().Foreground(Colors.Running).Bold(true),
		SelectionIndicator: lipgloss.NewStyle().Foreground(Colors.Primary),
		StateIdle:          lipgloss.NewStyle().Foreground(Colors.Idle),
		StateRunning:       lipgloss.NewStyle().Foreground(Colors.Running),
		StateCompleted:     lipgloss.NewStyle().Foreground(Colors.Completed),

		InputPrompt: lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),
		ConfirmDialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(0, 1),
		ErrorMsg:     lipgloss.NewStyle().Foreground(Colors.Error),
		StatusMsg:    lipgloss.NewStyle().Foreground(Colors.Success),
		Footer:       lipgloss.NewStyle().Foreground(Colors.Muted).MarginTop(1),
		SectionTitle: lipgloss.NewStyle().Foreground(Colors.Muted).Bold(true).MarginTop(1),
		EmptyState:   lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
	}
}

// StateStyle returns the style for a task state.
func (s Styles) StateStyle(state domain.State) lipgloss.Style {
	switch state {
	case domain.StateRunning:
		return s.StateRunning
	case domain.StateCompleted:
		return s.StateCompleted
	case domain.StateIdle:
		return s.StateIdle
	}
	return s.StateIdle
}

// StateIcon returns the icon for a task state.
func StateIcon(state domain.State) string {
	switch state {
	case domain.StateRunning:
		return "▶"
	case domain.StateCompleted:
		return "✓"
	case domain.StateIdle:
		return "○"
	}
	return "?"
}
