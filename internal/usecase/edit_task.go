package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
// A nil or blank field is left unchanged.
type EditTaskInput struct {
	Name   *string // New name
	Hours  *string // Accumulated hours override, as typed by the user
	Info   *string // New description
	Note   *string // Note to append
	Caller string  // Caller identity
	TaskID int     // Task ID to edit (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task    *domain.Task // The updated task
	Note    *domain.Note // The appended note, if any
	Changed bool         // True if any task field changed
}

// EditTask is the use case for the direct field mutators of a task.
type EditTask struct {
	tasks  domain.TaskStore
	notes  domain.NoteLedger
	clock  domain.Clock
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskStore, notes domain.NoteLedger, clock domain.Clock, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:  tasks,
		notes:  notes,
		clock:  clock,
		logger: logger,
	}
}

// Execute applies the requested edits. Completed tasks may still be edited.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Name == nil && in.Hours == nil && in.Info == nil && in.Note == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	// Validate before taking the lock
	var hours *float64
	if in.Hours != nil {
		h, err := ParseHours(*in.Hours)
		if err != nil {
			return nil, err
		}
		hours = h
	}

	out := &EditTaskOutput{}
	err := shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		task, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if name := strings.TrimSpace(*in.Name); name != "" && name != task.Name {
				task.Name = name
				out.Changed = true
			}
		}
		if hours != nil && *hours != task.HoursSpent {
			task.HoursSpent = *hours
			out.Changed = true
		}
		if in.Info != nil {
			if info := strings.TrimSpace(*in.Info); info != "" && info != task.Info {
				task.Info = info
				out.Changed = true
			}
		}

		if out.Changed {
			if err := uc.tasks.Update(task); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
		}

		if in.Note != nil {
			if text := strings.TrimSpace(*in.Note); text != "" {
				note := &domain.Note{TaskID: task.ID, Text: text, CreatedAt: uc.clock.Now()}
				if err := uc.notes.AddNote(note); err != nil {
					return fmt.Errorf("add note: %w", err)
				}
				out.Note = note
			}
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil && out.Changed {
		uc.logger.Info(out.Task.ID, "task", fmt.Sprintf("edited: %q, %s", out.Task.Name, domain.FormatHours(out.Task.HoursSpent)))
	}
	return out, nil
}

// ParseHours parses an hours override. A blank value returns nil (no change).
func ParseHours(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidHours, s)
	}
	return &h, nil
}
