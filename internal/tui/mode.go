// Package tui provides the terminal user interface for tasktimer.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal    Mode = iota // Default navigation mode
	ModeConfirm               // Confirmation dialog mode
	ModeInputName             // Name input mode (for new task)
	ModeHelp                  // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfirm:
		return "confirm"
	case ModeInputName:
		return "input_name"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeInputName
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone     ConfirmAction = iota
	ConfirmDelete                 // Delete task and notes
	ConfirmComplete               // Complete task
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		return "delete"
	case ConfirmComplete:
		return "complete"
	}
	return ""
}
