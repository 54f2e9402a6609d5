// Package jsonstore provides a JSON file-based implementation of TaskStore and NoteLedger.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/infra/flock"
	"github.com/runoshun/tasktimer/internal/infra/keylock"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Tasks map[string]*domain.Task `json:"tasks"`
	Notes map[string]*domain.Note `json:"notes"`
	Meta  meta                    `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextTaskID int `json:"nextTaskID"`
	NextNoteID int `json:"nextNoteID"`
}

// Store implements domain.TaskStore and domain.NoteLedger using a JSON file.
// The whole file is guarded by a flock for each read or write; per-task
// critical sections additionally hold an in-process lock and a per-task flock
// so that separate processes serialize on the same task.
type Store struct {
	locks    *keylock.Locker
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created by Initialize.
func New(path string) *Store {
	return &Store{
		locks:    keylock.New(),
		path:     path,
		lockPath: path + ".lock",
	}
}

// Create assigns a new ID to task and stores it.
func (s *Store) Create(task *domain.Task) error {
	err := s.withLockWrite(func(data *storeData) error {
		task.ID = data.Meta.NextTaskID
		data.Meta.NextTaskID++
		data.Tasks[strconv.Itoa(task.ID)] = task.Clone()
		return nil
	})
	return domain.Storage("create task", err)
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		if t, ok := data.Tasks[strconv.Itoa(id)]; ok {
			task = t
			task.ID = id
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage("get task", err)
	}
	return task, nil
}

// Update replaces a stored task.
func (s *Store) Update(task *domain.Task) error {
	err := s.withLockWrite(func(data *storeData) error {
		key := strconv.Itoa(task.ID)
		if _, ok := data.Tasks[key]; !ok {
			return domain.ErrTaskNotFound
		}
		data.Tasks[key] = task.Clone()
		return nil
	})
	return domain.Storage("update task", err)
}

// Delete removes a task by ID.
func (s *Store) Delete(id int) error {
	err := s.withLockWrite(func(data *storeData) error {
		delete(data.Tasks, strconv.Itoa(id))
		return nil
	})
	return domain.Storage("delete task", err)
}

// DeleteWithNotes removes a task and all of its notes in one file write.
func (s *Store) DeleteWithNotes(taskID int) error {
	err := s.withLockWrite(func(data *storeData) error {
		delete(data.Tasks, strconv.Itoa(taskID))
		deleteNotesOf(data, taskID)
		return nil
	})
	return domain.Storage("delete task with notes", err)
}

// ListByOwner returns tasks owned by owner, or every task if owner is empty.
func (s *Store) ListByOwner(owner string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for key, t := range data.Tasks {
			id, _ := strconv.Atoi(key)
			t.ID = id
			if owner != "" && t.Owner != owner {
				continue
			}
			tasks = append(tasks, t)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}

	// Sort by ID for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, nil
}

// Lock acquires the exclusive lock for a task across goroutines and processes.
func (s *Store) Lock(id int) (func(), error) {
	release := s.locks.Lock(id)
	f, err := flock.Acquire(domain.TaskLockPath(s.path, id), flock.Exclusive)
	if err != nil {
		release()
		return nil, domain.Storage("lock task", err)
	}
	return func() {
		flock.Release(f)
		release()
	}, nil
}

// AddNote assigns a new ID to note and stores it.
func (s *Store) AddNote(note *domain.Note) error {
	err := s.withLockWrite(func(data *storeData) error {
		if _, ok := data.Tasks[strconv.Itoa(note.TaskID)]; !ok {
			return domain.ErrTaskNotFound
		}
		note.ID = data.Meta.NextNoteID
		data.Meta.NextNoteID++
		n := *note
		data.Notes[strconv.Itoa(note.ID)] = &n
		return nil
	})
	return domain.Storage("add note", err)
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id int) (*domain.Note, error) {
	var note *domain.Note
	err := s.withLock(func(data *storeData) error {
		note = data.Notes[strconv.Itoa(id)]
		return nil
	})
	if err != nil {
		return nil, domain.Storage("get note", err)
	}
	return note, nil
}

// ToggleNote flips the done flag of a note.
func (s *Store) ToggleNote(id int) (*domain.Note, error) {
	return s.mutateNote("toggle note", id, func(n *domain.Note) {
		n.Done = !n.Done
	})
}

// UpdateNoteText replaces the text of a note.
func (s *Store) UpdateNoteText(id int, text string) (*domain.Note, error) {
	return s.mutateNote("update note", id, func(n *domain.Note) {
		n.Text = text
	})
}

func (s *Store) mutateNote(op string, id int, fn func(*domain.Note)) (*domain.Note, error) {
	var updated domain.Note
	err := s.withLockWrite(func(data *storeData) error {
		n, ok := data.Notes[strconv.Itoa(id)]
		if !ok {
			return domain.ErrNoteNotFound
		}
		fn(n)
		updated = *n
		return nil
	})
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	return &updated, nil
}

// DeleteNote removes a single note.
func (s *Store) DeleteNote(id int) error {
	err := s.withLockWrite(func(data *storeData) error {
		key := strconv.Itoa(id)
		if _, ok := data.Notes[key]; !ok {
			return domain.ErrNoteNotFound
		}
		delete(data.Notes, key)
		return nil
	})
	return domain.Storage("delete note", err)
}

// ListByTask returns a task's notes ordered by ID.
func (s *Store) ListByTask(taskID int) ([]*domain.Note, error) {
	notes := []*domain.Note{} // Return empty slice, not nil
	err := s.withLock(func(data *storeData) error {
		for _, n := range data.Notes {
			if n.TaskID == taskID {
				notes = append(notes, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage("list notes", err)
	}
	slices.SortFunc(notes, func(a, b *domain.Note) int {
		return a.ID - b.ID
	})
	return notes, nil
}

// DeleteAllForTask removes every note of a task.
func (s *Store) DeleteAllForTask(taskID int) error {
	err := s.withLockWrite(func(data *storeData) error {
		deleteNotesOf(data, taskID)
		return nil
	})
	return domain.Storage("delete notes", err)
}

func deleteNotesOf(data *storeData, taskID int) {
	for key, n := range data.Notes {
		if n.TaskID == taskID {
			delete(data.Notes, key)
		}
	}
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	data := &storeData{
		Meta:  meta{NextTaskID: 1, NextNoteID: 1},
		Tasks: make(map[string]*domain.Task),
		Notes: make(map[string]*domain.Note),
	}
	return s.write(data)
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := flock.Acquire(s.lockPath, flock.Shared)
	if err != nil {
		return err
	}
	defer flock.Release(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := flock.Acquire(s.lockPath, flock.Exclusive)
	if err != nil {
		return err
	}
	defer flock.Release(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.write(data)
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Ensure maps are initialized
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	if data.Notes == nil {
		data.Notes = make(map[string]*domain.Note)
	}
	if data.Meta.NextTaskID < 1 {
		data.Meta.NextTaskID = 1
	}
	if data.Meta.NextNoteID < 1 {
		data.Meta.NextNoteID = 1
	}
	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var (
	_ domain.TaskStore        = (*Store)(nil)
	_ domain.NoteLedger       = (*Store)(nil)
	_ domain.CascadeDeleter   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
