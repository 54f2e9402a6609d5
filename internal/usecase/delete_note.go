package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// DeleteNoteInput contains the parameters for deleting a note.
type DeleteNoteInput struct {
	Caller string // Caller identity
	NoteID int    // Note to delete
}

// DeleteNoteOutput contains the result of deleting a note.
type DeleteNoteOutput struct {
	Note *domain.Note // The note as it was before deletion
}

// DeleteNote removes a single note.
type DeleteNote struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
}

// NewDeleteNote creates a new DeleteNote use case.
func NewDeleteNote(tasks domain.TaskStore, notes domain.NoteLedger) *DeleteNote {
	return &DeleteNote{tasks: tasks, notes: notes}
}

// Execute deletes the note.
func (uc *DeleteNote) Execute(_ context.Context, in DeleteNoteInput) (*DeleteNoteOutput, error) {
	note, err := shared.GetOwnedNote(uc.tasks, uc.notes, in.NoteID, in.Caller)
	if err != nil {
		return nil, err
	}
	if err := uc.notes.DeleteNote(in.NoteID); err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return &DeleteNoteOutput{Note: note}, nil
}
