package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// AddNoteInput contains the parameters for adding a note to a task.
type AddNoteInput struct {
	Caller string // Caller identity
	Text   string // Note text (required)
	TaskID int    // Task to annotate
}

// AddNoteOutput contains the result of adding a note.
type AddNoteOutput struct {
	Note *domain.Note // The created note
}

// AddNote is the use case for attaching a note to a task.
type AddNote struct {
	tasks  domain.TaskStore
	notes  domain.NoteLedger
	clock  domain.Clock
	logger domain.Logger
}

// NewAddNote creates a new AddNote use case.
func NewAddNote(tasks domain.TaskStore, notes domain.NoteLedger, clock domain.Clock, logger domain.Logger) *AddNote {
	return &AddNote{
		tasks:  tasks,
		notes:  notes,
		clock:  clock,
		logger: logger,
	}
}

// Execute adds the note under the task's lock so it cannot race a cascade delete.
func (uc *AddNote) Execute(_ context.Context, in AddNoteInput) (*AddNoteOutput, error) {
	text, err := domain.ValidateNoteText(in.Text)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{TaskID: in.TaskID, Text: text}
	err = shared.WithTaskLock(uc.tasks, in.TaskID, func() error {
		if _, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller); err != nil {
			return err
		}
		note.CreatedAt = uc.clock.Now()
		if err := uc.notes.AddNote(note); err != nil {
			return fmt.Errorf("add note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Debug(in.TaskID, "note", fmt.Sprintf("added note #%d", note.ID))
	}
	return &AddNoteOutput{Note: note}, nil
}
