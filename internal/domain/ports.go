package domain

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error

	// IsInitialized reports whether the store already exists.
	IsInitialized() bool
}

// TaskStore manages task persistence and per-task serialization.
type TaskStore interface {
	// Create assigns a new ID to task and stores it.
	Create(task *Task) error

	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// Update replaces a stored task. Callers must hold the task's lock.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(task *Task) error

	// Delete removes a task by ID. Notes are not touched.
	Delete(id int) error

	// ListByOwner returns tasks owned by owner ordered by ID.
	// An empty owner lists every task.
	ListByOwner(owner string) ([]*Task, error)

	// Lock acquires the exclusive lock for a task ID and returns its release func.
	// Locks on different IDs are independent.
	Lock(id int) (unlock func(), err error)
}

// CascadeDeleter is implemented by stores that can remove a task and its notes atomically.
type CascadeDeleter interface {
	DeleteWithNotes(taskID int) error
}

// NoteLedger manages notes scoped to a task.
type NoteLedger interface {
	// AddNote assigns a new ID to note and stores it.
	AddNote(note *Note) error

	// GetNote retrieves a note by ID. Returns nil if not found.
	GetNote(id int) (*Note, error)

	// ToggleNote flips the done flag atomically and returns the updated note.
	ToggleNote(id int) (*Note, error)

	// UpdateNoteText replaces the note text atomically and returns the updated note.
	UpdateNoteText(id int, text string) (*Note, error)

	// DeleteNote removes a single note.
	DeleteNote(id int) error

	// ListByTask returns a task's notes in creation order.
	ListByTask(taskID int) ([]*Note, error)

	// DeleteAllForTask removes every note of a task.
	DeleteAllForTask(taskID int) error
}

// Logger records task activity.
type Logger interface {
	Info(taskID int, category, msg string)
	Debug(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Backend is a complete persistence backend for tasks and notes.
type Backend interface {
	StoreInitializer
	TaskStore
	NoteLedger
}

// ConfigInfo describes one configuration file on disk.
type ConfigInfo struct {
	Path    string // Absolute path to the file
	Content string // File content (empty if missing)
	Exists  bool   // True if the file exists
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	GetDataConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitDataConfig() error
	InitGlobalConfig() error
}
