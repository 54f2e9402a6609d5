package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Caller string // Caller identity
	TaskID int    // Task to complete
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task    *domain.Task // The completed task
	Delta   float64      // Seconds credited if a running session was ended
	Ended   bool         // True if a running session was ended first
	Clamped bool         // True if the ended session's delta was clamped
}

// CompleteTask marks a task completed, ending a running session first.
type CompleteTask struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	mono   domain.MonoClock
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskStore, clock domain.Clock, mono domain.MonoClock, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:  tasks,
		clock:  clock,
		mono:   mono,
		logger: logger,
	}
}

// Execute completes the task. Completing a completed task fails with ErrTaskCompleted.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	out := &CompleteTaskOutput{}
	err := shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		task, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return err
		}
		if task.Completed {
			return domain.ErrTaskCompleted
		}
		if task.IsRunning() {
			delta, clamped, err := task.End(uc.mono.Reading())
			if err != nil {
				return err
			}
			out.Ended, out.Delta, out.Clamped = true, delta, clamped
		}
		if err := task.Complete(uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.tasks.Update(task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Ended {
		logSessionEnd(uc.logger, out.Task, out.Delta, out.Clamped)
	}
	if uc.logger != nil {
		uc.logger.Info(out.Task.ID, "task", fmt.Sprintf("completed: %s total", domain.FormatHours(out.Task.HoursSpent)))
	}
	return out, nil
}
