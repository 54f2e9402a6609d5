package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Caller string // Caller identity (empty exports every task)
}

// ExportedNote is the serialized form of a note.
type ExportedNote struct {
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Text      string `json:"text" yaml:"text"`
	ID        int    `json:"id" yaml:"id"`
	Done      bool   `json:"done" yaml:"done"`
}

// ExportedTask is the serialized form of a task with its notes.
type ExportedTask struct {
	CompletedAt string         `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	CreatedAt   string         `json:"created_at" yaml:"created_at"`
	Name        string         `json:"name" yaml:"name"`
	Owner       string         `json:"owner,omitempty" yaml:"owner,omitempty"`
	Info        string         `json:"info,omitempty" yaml:"info,omitempty"`
	State       string         `json:"state" yaml:"state"`
	Notes       []ExportedNote `json:"notes" yaml:"notes"`
	HoursSpent  float64        `json:"hours_spent" yaml:"hours_spent"`
	ID          int            `json:"id" yaml:"id"`
}

// ExportTasksOutput contains the exported tasks.
type ExportTasksOutput struct {
	Tasks []ExportedTask `json:"tasks" yaml:"tasks"`
}

// ExportTasks collects every visible task with its notes for serialization.
type ExportTasks struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(tasks domain.TaskStore, notes domain.NoteLedger) *ExportTasks {
	return &ExportTasks{tasks: tasks, notes: notes}
}

// Execute builds the export document.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	tasks, err := uc.tasks.ListByOwner(in.Caller)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &ExportTasksOutput{Tasks: make([]ExportedTask, 0, len(tasks))}
	for _, task := range tasks {
		notes, err := uc.notes.ListByTask(task.ID)
		if err != nil {
			return nil, fmt.Errorf("list notes for task %d: %w", task.ID, err)
		}

		exported := ExportedTask{
			ID:         task.ID,
			Name:       task.Name,
			Owner:      task.Owner,
			Info:       task.Info,
			State:      string(task.State()),
			CreatedAt:  task.CreatedAt.Format(time.RFC3339),
			HoursSpent: task.HoursSpent,
			Notes:      make([]ExportedNote, 0, len(notes)),
		}
		if task.CompletedAt != nil {
			exported.CompletedAt = task.CompletedAt.Format(time.RFC3339)
		}
		for _, n := range notes {
			exported.Notes = append(exported.Notes, ExportedNote{
				ID:        n.ID,
				Text:      n.Text,
				Done:      n.Done,
				CreatedAt: n.CreatedAt.Format(time.RFC3339),
			})
		}
		out.Tasks = append(out.Tasks, exported)
	}
	return out, nil
}
