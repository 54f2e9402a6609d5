package domain

import (
	"strings"
	"time"
)

// Note represents a free-text annotation bound to one task.
// Fields are ordered to minimize memory padding.
type Note struct {
	CreatedAt time.Time `json:"createdAt"` // Creation time (display only)
	Text      string    `json:"text"`      // Note content
	ID        int       `json:"id"`        // Note ID (assigned by the ledger)
	TaskID    int       `json:"taskID"`    // Owning task
	Done      bool      `json:"done"`      // Independent of the task's state
}

// ValidateNoteText trims note text and rejects blank notes.
func ValidateNoteText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyNote
	}
	return text, nil
}
