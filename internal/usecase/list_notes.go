package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// ListNotesInput contains the parameters for listing a task's notes.
type ListNotesInput struct {
	Caller string // Caller identity
	TaskID int    // Task whose notes to list
}

// ListNotesOutput contains the result of listing notes.
type ListNotesOutput struct {
	Notes []*domain.Note // Notes in creation order
}

// ListNotes returns the notes of one task.
type ListNotes struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
}

// NewListNotes creates a new ListNotes use case.
func NewListNotes(tasks domain.TaskStore, notes domain.NoteLedger) *ListNotes {
	return &ListNotes{tasks: tasks, notes: notes}
}

// Execute lists the notes.
func (uc *ListNotes) Execute(_ context.Context, in ListNotesInput) (*ListNotesOutput, error) {
	if _, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller); err != nil {
		return nil, err
	}
	notes, err := uc.notes.ListByTask(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return &ListNotesOutput{Notes: notes}, nil
}
