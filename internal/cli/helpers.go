package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	return parseID("task", s)
}

// parseNoteID parses a note ID string to int.
func parseNoteID(s string) (int, error) {
	return parseID("note", s)
}

func parseID(kind, s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID %q", kind, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q: must be positive", kind, s)
	}
	return id, nil
}
