package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Caller           string // Caller identity (empty lists every task)
	IncludeCompleted bool   // Also return completed tasks
}

// TaskSummary pairs a task with its live session time.
type TaskSummary struct {
	Task    *domain.Task
	Elapsed float64 // Seconds in the running session
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Active    []TaskSummary // Idle and running tasks ordered by ID
	Completed []TaskSummary // Completed tasks ordered by ID (only if requested)
}

// ListTasks is the use case for listing the caller's tasks.
type ListTasks struct {
	tasks domain.TaskStore
	mono  domain.MonoClock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskStore, mono domain.MonoClock) *ListTasks {
	return &ListTasks{
		tasks: tasks,
		mono:  mono,
	}
}

// Execute lists tasks visible to the caller.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.ListByOwner(in.Caller)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	reading := uc.mono.Reading()
	out := &ListTasksOutput{
		Active:    []TaskSummary{},
		Completed: []TaskSummary{},
	}
	for _, task := range tasks {
		summary := TaskSummary{Task: task, Elapsed: task.Elapsed(reading)}
		if task.Completed {
			if in.IncludeCompleted {
				out.Completed = append(out.Completed, summary)
			}
			continue
		}
		out.Active = append(out.Active, summary)
	}
	return out, nil
}
