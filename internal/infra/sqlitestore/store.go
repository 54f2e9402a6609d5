// Package sqlitestore provides a SQLite-backed implementation of TaskStore and NoteLedger.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/infra/flock"
	"github.com/runoshun/tasktimer/internal/infra/keylock"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

const taskColumns = `id, name, owner_id, info, created_at, completed_at, hours_spent, session_start, active, completed`

// Store provides SQLite-backed persistence for tasks and notes.
type Store struct {
	db    *sql.DB
	locks *keylock.Locker
	path  string
	ready atomic.Bool
}

// Open opens (and creates if needed) the database file at path.
// The schema is not created until Initialize is called.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, locks: keylock.New(), path: path}

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`).Scan(&n)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	s.ready.Store(n > 0)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsInitialized reports whether the schema has been created.
func (s *Store) IsInitialized() bool {
	return s.ready.Load()
}

// Initialize creates or upgrades the schema.
func (s *Store) Initialize() error {
	if err := Migrate(s.db); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

func (s *Store) checkReady() error {
	if !s.ready.Load() {
		return domain.ErrNotInitialized
	}
	return nil
}

// Create assigns a new ID to task and stores it.
func (s *Store) Create(task *domain.Task) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	result, err := s.db.Exec(
		`INSERT INTO tasks (name, owner_id, info, created_at, completed_at, hours_spent, session_start, active, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Name, nullString(task.Owner), task.Info, formatTime(task.CreatedAt), nullTime(task.CompletedAt),
		task.HoursSpent, nullFloat(task.SessionStart), task.Active, task.Completed,
	)
	if err != nil {
		return domain.Storage("create task: insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Storage("create task: last insert id", err)
	}
	task.ID = int(id)
	return nil
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int) (*domain.Task, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Storage("get task", err)
	}
	return task, nil
}

// Update replaces a stored task.
func (s *Store) Update(task *domain.Task) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	result, err := s.db.Exec(
		`UPDATE tasks SET name = ?, owner_id = ?, info = ?, created_at = ?, completed_at = ?,
		        hours_spent = ?, session_start = ?, active = ?, completed = ?
		 WHERE id = ?`,
		task.Name, nullString(task.Owner), task.Info, formatTime(task.CreatedAt), nullTime(task.CompletedAt),
		task.HoursSpent, nullFloat(task.SessionStart), task.Active, task.Completed, task.ID,
	)
	if err != nil {
		return domain.Storage("update task", err)
	}
	return requireAffected(result, domain.ErrTaskNotFound, "update task")
}

// Delete removes a task by ID. Notes go with it through the foreign key cascade.
func (s *Store) Delete(id int) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return domain.Storage("delete task", err)
}

// DeleteWithNotes removes a task and its notes in one transaction.
func (s *Store) DeleteWithNotes(taskID int) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Storage("delete task: begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM notes WHERE task_id = ?`, taskID); err != nil {
		return domain.Storage("delete task: notes", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, taskID); err != nil {
		return domain.Storage("delete task: task", err)
	}
	return domain.Storage("delete task: commit", tx.Commit())
}

// ListByOwner returns tasks owned by owner, or every task if owner is empty.
func (s *Store) ListByOwner(owner string) ([]*domain.Task, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if owner != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, domain.Storage("list tasks: scan", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list tasks: rows", err)
	}
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
	if err := s.checkReady(); err != nil {
		return err
	}
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, note.TaskID).Scan(&exists)
	if err != nil {
		return domain.Storage("add note: check task", err)
	}
	if exists == 0 {
		return domain.ErrTaskNotFound
	}

	result, err := s.db.Exec(`INSERT INTO notes (task_id, text, done, created_at) VALUES (?, ?, ?, ?)`,
		note.TaskID, note.Text, note.Done, formatTime(note.CreatedAt))
	if err != nil {
		return domain.Storage("add note: insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Storage("add note: last insert id", err)
	}
	note.ID = int(id)
	return nil
}

// GetNote retrieves a note by ID. Returns nil if not found.
func (s *Store) GetNote(id int) (*domain.Note, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT id, task_id, text, done, created_at FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Storage("get note", err)
	}
	return note, nil
}

// ToggleNote flips the done flag in a single statement.
func (s *Store) ToggleNote(id int) (*domain.Note, error) {
	return s.mutateNote("toggle note", id, `UPDATE notes SET done = NOT done WHERE id = ?`, id)
}

// UpdateNoteText replaces the text of a note.
func (s *Store) UpdateNoteText(id int, text string) (*domain.Note, error) {
	return s.mutateNote("update note", id, `UPDATE notes SET text = ? WHERE id = ?`, text, id)
}

func (s *Store) mutateNote(op string, id int, stmt string, args ...any) (*domain.Note, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, domain.Storage(op+": begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(stmt, args...)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	if err := requireAffected(result, domain.ErrNoteNotFound, op); err != nil {
		return nil, err
	}
	note, err := scanNote(tx.QueryRow(`SELECT id, task_id, text, done, created_at FROM notes WHERE id = ?`, id))
	if err != nil {
		return nil, domain.Storage(op+": reload", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, domain.Storage(op+": commit", err)
	}
	return note, nil
}

// DeleteNote removes a single note.
func (s *Store) DeleteNote(id int) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return domain.Storage("delete note", err)
	}
	return requireAffected(result, domain.ErrNoteNotFound, "delete note")
}

// ListByTask returns a task's notes in creation order.
func (s *Store) ListByTask(taskID int) ([]*domain.Note, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, task_id, text, done, created_at FROM notes WHERE task_id = ? ORDER BY id ASC`, taskID)
	if err != nil {
		return nil, domain.Storage("list notes", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, domain.Storage("list notes: scan", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list notes: rows", err)
	}
	return notes, nil
}

// DeleteAllForTask removes every note of a task.
func (s *Store) DeleteAllForTask(taskID int) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM notes WHERE task_id = ?`, taskID)
	return domain.Storage("delete notes", err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var task domain.Task
	var owner, completedAt sql.NullString
	var sessionStart sql.NullFloat64
	var createdAt string

	err := row.Scan(&task.ID, &task.Name, &owner, &task.Info, &createdAt, &completedAt,
		&task.HoursSpent, &sessionStart, &task.Active, &task.Completed)
	if err != nil {
		return nil, err
	}

	task.Owner = owner.String
	task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		task.CompletedAt = &t
	}
	if sessionStart.Valid {
		v := sessionStart.Float64
		task.SessionStart = &v
	}
	return &task, nil
}

func scanNote(row scanner) (*domain.Note, error) {
	var note domain.Note
	var createdAt string
	if err := row.Scan(&note.ID, &note.TaskID, &note.Text, &note.Done, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	note.CreatedAt = t
	return &note, nil
}

func requireAffected(result sql.Result, notFound error, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return domain.Storage(op+": rows affected", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

var (
	_ domain.TaskStore        = (*Store)(nil)
	_ domain.NoteLedger       = (*Store)(nil)
	_ domain.CascadeDeleter   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
