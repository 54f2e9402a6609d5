package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// EndTimerInput contains the parameters for ending a task's timer.
type EndTimerInput struct {
	Caller string // Caller identity
	TaskID int    // Task to stop
}

// EndTimerOutput contains the result of ending a timer.
type EndTimerOutput struct {
	Task    *domain.Task // The idle task with updated hours
	Delta   float64      // Seconds credited by this session
	Clamped bool         // True if a negative delta was clamped to zero
}

// EndTimer closes the running session and credits its duration.
type EndTimer struct {
	tasks  domain.TaskStore
	mono   domain.MonoClock
	logger domain.Logger
}

// NewEndTimer creates a new EndTimer use case.
func NewEndTimer(tasks domain.TaskStore, mono domain.MonoClock, logger domain.Logger) *EndTimer {
	return &EndTimer{
		tasks:  tasks,
		mono:   mono,
		logger: logger,
	}
}

// Execute ends the timer. The read-modify-write runs under the task lock,
// so concurrent calls credit the session once.
func (uc *EndTimer) Execute(_ context.Context, in EndTimerInput) (*EndTimerOutput, error) {
	out := &EndTimerOutput{}
	err := shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		task, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return err
		}
		delta, clamped, err := task.End(uc.mono.Reading())
		if err != nil {
			return err
		}
		if err := uc.tasks.Update(task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		out.Task, out.Delta, out.Clamped = task, delta, clamped
		return nil
	})
	if err != nil {
		return nil, err
	}

	logSessionEnd(uc.logger, out.Task, out.Delta, out.Clamped)
	return out, nil
}

func logSessionEnd(logger domain.Logger, task *domain.Task, delta float64, clamped bool) {
	if logger == nil {
		return
	}
	if clamped {
		logger.Warn(task.ID, "timer", "clock went backwards; session credited as 0s")
	}
	logger.Info(task.ID, "timer", fmt.Sprintf("ended: +%.0fs, total %s", delta, domain.FormatHours(task.HoursSpent)))
}
