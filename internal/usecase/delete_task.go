package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Caller string // Caller identity
	TaskID int    // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task *domain.Task // The task as it was before deletion
}

// DeleteTask removes a task together with all of its notes.
type DeleteTask struct {
	tasks  domain.TaskStore
	notes  domain.NoteLedger
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskStore, notes domain.NoteLedger, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		notes:  notes,
		logger: logger,
	}
}

// Execute deletes the task. Stores implementing domain.CascadeDeleter remove
// the task and its notes in one operation; otherwise notes go first so a
// failure never leaves orphaned notes behind.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	var task *domain.Task
	err := shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		var err error
		task, err = shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return err
		}

		if cascade, ok := uc.tasks.(domain.CascadeDeleter); ok {
			if err := cascade.DeleteWithNotes(in.TaskID); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			return nil
		}

		if err := uc.notes.DeleteAllForTask(in.TaskID); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
		if err := uc.tasks.Delete(in.TaskID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "task", fmt.Sprintf("deleted: %q", task.Name))
	}
	return &DeleteTaskOutput{Task: task}, nil
}
