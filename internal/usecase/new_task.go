package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/tasktimer/internal/domain"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Caller string // Caller identity (empty in single-user mode)
	Name   string // Task name (required)
	Info   string // Description (optional)
	Note   string // Initial note (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task // The created task
	Note *domain.Note // The initial note, if one was given
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks  domain.TaskStore
	notes  domain.NoteLedger
	clock  domain.Clock
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskStore, notes domain.NoteLedger, clock domain.Clock, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:  tasks,
		notes:  notes,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a new idle task owned by the caller.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	name, err := domain.ValidateName(in.Name)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:      name,
		Owner:     in.Caller,
		Info:      strings.TrimSpace(in.Info),
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", name))
	}

	out := &NewTaskOutput{Task: task}
	if text := strings.TrimSpace(in.Note); text != "" {
		note := &domain.Note{TaskID: task.ID, Text: text, CreatedAt: uc.clock.Now()}
		if err := uc.notes.AddNote(note); err != nil {
			return nil, fmt.Errorf("add note: %w", err)
		}
		out.Note = note
	}
	return out, nil
}
