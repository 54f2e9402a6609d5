package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// StartTimerInput contains the parameters for starting a task's timer.
type StartTimerInput struct {
	Caller string // Caller identity
	TaskID int    // Task to start
}

// StartTimerOutput contains the result of starting a timer.
type StartTimerOutput struct {
	Task *domain.Task // The running task
}

// StartTimer opens a session on an idle task.
type StartTimer struct {
	tasks  domain.TaskStore
	mono   domain.MonoClock
	logger domain.Logger
}

// NewStartTimer creates a new StartTimer use case.
func NewStartTimer(tasks domain.TaskStore, mono domain.MonoClock, logger domain.Logger) *StartTimer {
	return &StartTimer{
		tasks:  tasks,
		mono:   mono,
		logger: logger,
	}
}

// Execute starts the timer. A running or completed task is rejected and left unchanged.
func (uc *StartTimer) Execute(_ context.Context, in StartTimerInput) (*StartTimerOutput, error) {
	var task *domain.Task
	err := shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		var err error
		task, err = shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return err
		}
		if err := task.Start(uc.mono.Reading()); err != nil {
			return err
		}
		if err := uc.tasks.Update(task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "timer", "started")
	}
	return &StartTimerOutput{Task: task}, nil
}
