package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	Caller string // Caller identity
	TaskID int    // Task ID (required)
}

// ShowTaskOutput contains the result of showing a task.
type ShowTaskOutput struct {
	Task    *domain.Task   // The task details
	Notes   []*domain.Note // Notes in creation order
	Elapsed float64        // Seconds in the running session (0 if idle)
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
	mono  domain.MonoClock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskStore, notes domain.NoteLedger, mono domain.MonoClock) *ShowTask {
	return &ShowTask{
		tasks: tasks,
		notes: notes,
		mono:  mono,
	}
}

// Execute retrieves the task and its notes.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
	if err != nil {
		return nil, err
	}

	notes, err := uc.notes.ListByTask(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return &ShowTaskOutput{
		Task:    task,
		Notes:   notes,
		Elapsed: task.Elapsed(uc.mono.Reading()),
	}, nil
}
