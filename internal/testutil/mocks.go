// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/infra/keylock"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockMonoClock is a test double for domain.MonoClock.
type MockMonoClock struct {
	mu    sync.Mutex
	Value float64
}

// Reading returns the current value.
func (m *MockMonoClock) Reading() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Value
}

// Advance moves the clock forward by seconds (negative values move it back).
func (m *MockMonoClock) Advance(seconds float64) {
	m.mu.Lock()
	m.Value += seconds
	m.mu.Unlock()
}

// MockStore is an in-memory test double for domain.TaskStore and domain.NoteLedger.
// It is safe for concurrent use and hands out copies so callers cannot
// mutate stored state without calling Update.
// Fields are ordered to minimize memory padding.
type MockStore struct {
	Tasks       map[int]*domain.Task
	Notes       map[int]*domain.Note
	locks       keylock.Locker
	CreateErr   error
	GetErr      error
	UpdateErr   error
	DeleteErr   error
	ListErr     error
	LockErr     error
	AddNoteErr  error
	NoteErr     error
	mu          sync.Mutex
	nextTaskID  int
	nextNoteID  int
	Updates     int
	Initialized bool
}

// NewMockStore creates a new MockStore with initialized maps.
func NewMockStore() *MockStore {
	return &MockStore{
		Tasks:      make(map[int]*domain.Task),
		Notes:      make(map[int]*domain.Note),
		nextTaskID: 1,
		nextNoteID: 1,
	}
}

// Seed stores task as-is, assigning an ID when it has none.
func (m *MockStore) Seed(task *domain.Task) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == 0 {
		task.ID = m.nextTaskID
	}
	if task.ID >= m.nextTaskID {
		m.nextTaskID = task.ID + 1
	}
	m.Tasks[task.ID] = task.Clone()
	return task
}

// SeedNote stores note as-is, assigning an ID when it has none.
func (m *MockStore) SeedNote(note *domain.Note) *domain.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	if note.ID == 0 {
		note.ID = m.nextNoteID
	}
	if note.ID >= m.nextNoteID {
		m.nextNoteID = note.ID + 1
	}
	n := *note
	m.Notes[note.ID] = &n
	return note
}

// Task returns a copy of the stored task, or nil.
func (m *MockStore) Task(id int) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Tasks[id].Clone()
}

// Create assigns a new ID to task and stores it.
func (m *MockStore) Create(task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.nextTaskID
	m.nextTaskID++
	m.Tasks[task.ID] = task.Clone()
	return nil
}

// Get retrieves a task by ID.
func (m *MockStore) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Tasks[id].Clone(), nil
}

// Update replaces a stored task.
func (m *MockStore) Update(task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task.Clone()
	m.Updates++
	return nil
}

// Delete removes a task by ID.
func (m *MockStore) Delete(id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tasks, id)
	return nil
}

// ListByOwner returns tasks owned by owner ordered by ID.
func (m *MockStore) ListByOwner(owner string) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []*domain.Task
	for _, t := range m.Tasks {
		if owner == "" || t.Owner == owner {
			tasks = append(tasks, t.Clone())
		}
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int { return a.ID - b.ID })
	return tasks, nil
}

// Lock acquires the per-task lock.
func (m *MockStore) Lock(id int) (func(), error) {
	if m.LockErr != nil {
		return nil, m.LockErr
	}
	return m.locks.Lock(id), nil
}

// Initialize marks the store initialized.
func (m *MockStore) Initialize() error {
	m.mu.Lock()
	m.Initialized = true
	m.mu.Unlock()
	return nil
}

// IsInitialized returns whether Initialize has been called or the flag was preset.
func (m *MockStore) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Initialized
}

// AddNote assigns a new ID to note and stores it.
func (m *MockStore) AddNote(note *domain.Note) error {
	if m.AddNoteErr != nil {
		return m.AddNoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[note.TaskID]; !ok {
		return domain.ErrTaskNotFound
	}
	note.ID = m.nextNoteID
	m.nextNoteID++
	n := *note
	m.Notes[note.ID] = &n
	return nil
}

// GetNote retrieves a note by ID.
func (m *MockStore) GetNote(id int) (*domain.Note, error) {
	if m.NoteErr != nil {
		return nil, m.NoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.Notes[id]
	if !ok {
		return nil, nil
	}
	c := *n
	return &c, nil
}

// ToggleNote flips the done flag of a note.
func (m *MockStore) ToggleNote(id int) (*domain.Note, error) {
	return m.mutateNote(id, func(n *domain.Note) { n.Done = !n.Done })
}

// UpdateNoteText replaces the text of a note.
func (m *MockStore) UpdateNoteText(id int, text string) (*domain.Note, error) {
	return m.mutateNote(id, func(n *domain.Note) { n.Text = text })
}

func (m *MockStore) mutateNote(id int, fn func(*domain.Note)) (*domain.Note, error) {
	if m.NoteErr != nil {
		return nil, m.NoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.Notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	fn(n)
	c := *n
	return &c, nil
}

// DeleteNote removes a single note.
func (m *MockStore) DeleteNote(id int) error {
	if m.NoteErr != nil {
		return m.NoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(m.Notes, id)
	return nil
}

// ListByTask returns a task's notes ordered by ID.
func (m *MockStore) ListByTask(taskID int) ([]*domain.Note, error) {
	if m.NoteErr != nil {
		return nil, m.NoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	notes := []*domain.Note{}
	for _, n := range m.Notes {
		if n.TaskID == taskID {
			c := *n
			notes = append(notes, &c)
		}
	}
	slices.SortFunc(notes, func(a, b *domain.Note) int { return a.ID - b.ID })
	return notes, nil
}

// DeleteAllForTask removes every note of a task.
func (m *MockStore) DeleteAllForTask(taskID int) error {
	if m.NoteErr != nil {
		return m.NoteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.Notes {
		if n.TaskID == taskID {
			delete(m.Notes, id)
		}
	}
	return nil
}

// MockCascadeStore extends MockStore with domain.CascadeDeleter.
type MockCascadeStore struct {
	*MockStore
	CascadeCalls int
}

// DeleteWithNotes removes a task and its notes.
func (m *MockCascadeStore) DeleteWithNotes(taskID int) error {
	m.CascadeCalls++
	if err := m.DeleteAllForTask(taskID); err != nil {
		return err
	}
	return m.Delete(taskID)
}

// LogEntry is one record captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) record(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) { m.record("INFO", taskID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.record("DEBUG", taskID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.record("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) { m.record("ERROR", taskID, category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// NewMockConfigLoader creates a MockConfigLoader returning default configs.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config:       domain.NewDefaultConfig(),
		GlobalConfig: domain.NewDefaultConfig(),
	}
}

// Load returns the configured merged config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.GlobalConfig, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitDataErr      error
	InitGlobalErr    error
	DataConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitDataCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a MockConfigManager with empty file infos.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetDataConfigInfo returns the configured data dir config info.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitDataConfig records the call and returns InitDataErr.
func (m *MockConfigManager) InitDataConfig() error {
	m.InitDataCalled = true
	return m.InitDataErr
}

// InitGlobalConfig records the call and returns InitGlobalErr.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// Interface assertions.
var (
	_ domain.TaskStore        = (*MockStore)(nil)
	_ domain.NoteLedger       = (*MockStore)(nil)
	_ domain.StoreInitializer = (*MockStore)(nil)
	_ domain.CascadeDeleter   = (*MockCascadeStore)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
	_ domain.ConfigLoader     = (*MockConfigLoader)(nil)
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.MonoClock        = (*MockMonoClock)(nil)
)

// ErrMock is a generic injected failure.
var ErrMock = errors.New("mock failure")
