package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a use case matches one of these with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage error")
)

// Domain errors.
var (
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrNoteNotFound     = fmt.Errorf("note %w", ErrNotFound)
	ErrTimerRunning     = fmt.Errorf("%w: timer already running", ErrInvalidState)
	ErrTimerNotRunning  = fmt.Errorf("%w: timer not running", ErrInvalidState)
	ErrTaskCompleted    = fmt.Errorf("%w: task already completed", ErrInvalidState)
	ErrNotOwner         = fmt.Errorf("%w: task belongs to another user", ErrForbidden)
	ErrIdentityRequired = fmt.Errorf("%w: a user is required in multi-user mode", ErrForbidden)
	ErrEmptyName        = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyNote        = fmt.Errorf("%w: note cannot be empty", ErrValidation)
	ErrInvalidHours     = fmt.Errorf("%w: hours must be a non-negative number", ErrValidation)
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", ErrValidation)
	ErrNotInitialized   = fmt.Errorf("%w: store not initialized (run 'tasktimer init' first)", ErrInvalidState)
	ErrUnknownBackend   = fmt.Errorf("%w: unknown store backend", ErrValidation)
	ErrNoLogs           = fmt.Errorf("log file %w", ErrNotFound)
	ErrStoreNotEmpty    = fmt.Errorf("%w: destination store already has tasks", ErrInvalidState)
	ErrConfigExists     = fmt.Errorf("%w: config file already exists", ErrInvalidState)
)

// StorageError reports a persistence failure. It matches both ErrStorage and the cause.
type StorageError struct {
	Err error
	Op  string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes ErrStorage and the underlying cause to errors.Is and errors.As.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// Storage wraps err as a StorageError for op. It returns nil if err is nil and
// passes through errors that already carry a domain kind.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNotFound, ErrStorage, ErrNotInitialized} {
		if errors.Is(err, kind) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return &StorageError{Op: op, Err: err}
}
