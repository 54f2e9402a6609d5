// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// SecondsPerHour converts monotonic clock seconds into accumulated hours.
const SecondsPerHour = 3600.0

// Task represents a named unit of trackable work.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt    time.Time  `json:"createdAt"`              // Creation time (wall clock)
	CompletedAt  *time.Time `json:"completedAt,omitempty"`  // Set exactly when the task becomes completed
	SessionStart *float64   `json:"sessionStart,omitempty"` // MonoClock reading; set iff running
	Name         string     `json:"name"`                   // Label (required)
	Owner        string     `json:"owner,omitempty"`        // Owning identity (empty in single-user mode)
	Info         string     `json:"info,omitempty"`         // Free-text description
	HoursSpent   float64    `json:"hoursSpent"`             // Accumulated hours across sessions
	ID           int        `json:"-"`                      // Task ID (assigned by the store)
	Active       bool       `json:"active"`                 // Mirrors SessionStart != nil
	Completed    bool       `json:"completed"`              // Terminal for timing
}

// State returns the lifecycle state derived from the task's flags.
func (t *Task) State() State {
	switch {
	case t.Completed:
		return StateCompleted
	case t.Active:
		return StateRunning
	default:
		return StateIdle
	}
}

// IsRunning returns true if a session is currently open.
func (t *Task) IsRunning() bool {
	return t.Active && t.SessionStart != nil
}

// Start opens a session at the given monotonic reading.
func (t *Task) Start(reading float64) error {
	if !t.State().CanStart() {
		if t.Completed {
			return ErrTaskCompleted
		}
		return ErrTimerRunning
	}
	start := reading
	t.SessionStart = &start
	t.Active = true
	return nil
}

// End closes the running session and credits its duration.
// It returns the credited seconds and whether a negative delta was clamped to zero.
func (t *Task) End(reading float64) (float64, bool, error) {
	if !t.IsRunning() {
		return 0, false, ErrTimerNotRunning
	}
	delta := reading - *t.SessionStart
	clamped := false
	if delta < 0 {
		delta = 0
		clamped = true
	}
	t.HoursSpent += delta / SecondsPerHour
	t.SessionStart = nil
	t.Active = false
	return delta, clamped, nil
}

// Complete marks the task completed. The caller must end a running session first.
func (t *Task) Complete(now time.Time) error {
	if t.Completed {
		return ErrTaskCompleted
	}
	if t.IsRunning() {
		return ErrTimerRunning
	}
	completedAt := now
	t.CompletedAt = &completedAt
	t.Completed = true
	return nil
}

// Elapsed returns the seconds spent in the current session, or zero if idle.
func (t *Task) Elapsed(reading float64) float64 {
	if !t.IsRunning() {
		return 0
	}
	if d := reading - *t.SessionStart; d > 0 {
		return d
	}
	return 0
}

// ValidateName trims a task name and rejects blank names.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.SessionStart != nil {
		v := *t.SessionStart
		c.SessionStart = &v
	}
	return &c
}
