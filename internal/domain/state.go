package domain

// State represents the lifecycle state of a task.
// Deleted tasks have no state: the record no longer exists.
type State string

const (
	StateIdle      State = "idle"      // Created, not running, not completed
	StateRunning   State = "running"   // Session open
	StateCompleted State = "completed" // Terminal with respect to start
)

// CanStart returns true if a task in this state can open a session.
func (s State) CanStart() bool {
	return s == StateIdle
}

// CanEnd returns true if a task in this state has a session to close.
func (s State) CanEnd() bool {
	return s == StateRunning
}

// CanComplete returns true if a task in this state can be completed.
func (s State) CanComplete() bool {
	return s == StateIdle || s == StateRunning
}

// IsTerminal returns true if no further timing is possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted
}

// Display returns a human-readable representation of the state.
func (s State) Display() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	default:
		return string(s)
	}
}
