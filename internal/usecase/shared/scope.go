package shared

import (
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
)

// Authorize checks that caller may act on task.
// An empty caller is single-user mode, where every task is visible.
func Authorize(task *domain.Task, caller string) error {
	if caller == "" {
		return nil
	}
	if task.Owner != caller {
		return domain.ErrNotOwner
	}
	return nil
}

// GetOwnedTask retrieves a task and verifies the caller owns it.
func GetOwnedTask(store domain.TaskStore, taskID int, caller string) (*domain.Task, error) {
	task, err := GetTask(store, taskID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(task, caller); err != nil {
		return nil, err
	}
	return task, nil
}

// GetOwnedNote retrieves a note and verifies the caller owns the task it belongs to.
func GetOwnedNote(store domain.TaskStore, notes domain.NoteLedger, noteID int, caller string) (*domain.Note, error) {
	note, err := notes.GetNote(noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		return nil, domain.ErrNoteNotFound
	}
	if _, err := GetOwnedTask(store, note.TaskID, caller); err != nil {
		return nil, err
	}
	return note, nil
}
