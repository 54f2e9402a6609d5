package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// EditNoteInput contains the parameters for editing a note.
type EditNoteInput struct {
	Caller string // Caller identity
	Text   string // New text (required)
	NoteID int    // Note to edit
}

// EditNoteOutput contains the result of editing a note.
type EditNoteOutput struct {
	Note *domain.Note // The updated note
}

// EditNote replaces a note's text.
type EditNote struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
}

// NewEditNote creates a new EditNote use case.
func NewEditNote(tasks domain.TaskStore, notes domain.NoteLedger) *EditNote {
	return &EditNote{tasks: tasks, notes: notes}
}

// Execute validates the text and replaces it.
func (uc *EditNote) Execute(_ context.Context, in EditNoteInput) (*EditNoteOutput, error) {
	text, err := domain.ValidateNoteText(in.Text)
	if err != nil {
		return nil, err
	}
	if _, err := shared.GetOwnedNote(uc.tasks, uc.notes, in.NoteID, in.Caller); err != nil {
		return nil, err
	}
	note, err := uc.notes.UpdateNoteText(in.NoteID, text)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &EditNoteOutput{Note: note}, nil
}
