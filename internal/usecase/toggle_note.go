package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// ToggleNoteInput contains the parameters for toggling a note.
type ToggleNoteInput struct {
	Caller string // Caller identity
	NoteID int    // Note to toggle
}

// ToggleNoteOutput contains the result of toggling a note.
type ToggleNoteOutput struct {
	Note *domain.Note // The updated note
}

// ToggleNote flips a note's done flag.
type ToggleNote struct {
	tasks domain.TaskStore
	notes domain.NoteLedger
}

// NewToggleNote creates a new ToggleNote use case.
func NewToggleNote(tasks domain.TaskStore, notes domain.NoteLedger) *ToggleNote {
	return &ToggleNote{tasks: tasks, notes: notes}
}

// Execute toggles the note. The flip itself is one atomic ledger call.
func (uc *ToggleNote) Execute(_ context.Context, in ToggleNoteInput) (*ToggleNoteOutput, error) {
	if _, err := shared.GetOwnedNote(uc.tasks, uc.notes, in.NoteID, in.Caller); err != nil {
		return nil, err
	}
	note, err := uc.notes.ToggleNote(in.NoteID)
	if err != nil {
		return nil, fmt.Errorf("toggle note: %w", err)
	}
	return &ToggleNoteOutput{Note: note}, nil
}
