// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/infra/config"
	"github.com/runoshun/tasktimer/internal/infra/jsonstore"
	"github.com/runoshun/tasktimer/internal/infra/logging"
	"github.com/runoshun/tasktimer/internal/infra/sqlitestore"
	"github.com/runoshun/tasktimer/internal/usecase"
)

// EnvHome overrides the data directory.
const EnvHome = "TASKTIMER_HOME"

// Config holds the application paths.
type Config struct {
	DataDir   string // Directory holding the store, config and logs
	StorePath string // Path to the store file
	Backend   string // Store backend name
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Backend       domain.Backend
	Clock         domain.Clock
	Mono          domain.MonoClock
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	AppConfig *domain.Config
	closers   []io.Closer

	// Configuration
	Config Config
}

// ResolveDataDir returns the data directory: $TASKTIMER_HOME, then
// $XDG_DATA_HOME/tasktimer, then ~/.local/share/tasktimer.
func ResolveDataDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return filepath.Abs(dir)
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, domain.AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", domain.AppDirName), nil
}

// OpenBackend opens the named store backend at path.
func OpenBackend(backend, path string) (domain.Backend, error) {
	switch backend {
	case domain.BackendSQLite:
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.BackendJSON:
		return jsonstore.New(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}
}

// New creates a new Container for the given data directory.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		DataDir:   dataDir,
		StorePath: appConfig.ResolveStorePath(dataDir),
		Backend:   appConfig.Backend(),
	}

	backend, err := OpenBackend(cfg.Backend, cfg.StorePath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	c := &Container{
		Backend:       backend,
		Clock:         domain.RealClock{},
		Mono:          domain.NewSystemMonoClock(),
		Logger:        logger,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		AppConfig:     appConfig,
		Config:        cfg,
	}
	c.track(backend)
	c.closers = append(c.closers, logger)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, backend domain.Backend, clock domain.Clock, mono domain.MonoClock, logger domain.Logger, appConfig *domain.Config) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Backend:   backend,
		Clock:     clock,
		Mono:      mono,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

func (c *Container) track(v any) {
	if closer, ok := v.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
}

// Close releases the store and log files.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// ResolveCaller resolves the caller identity for the current invocation.
func (c *Container) ResolveCaller(explicit string) (string, error) {
	return c.AppConfig.ResolveCaller(explicit)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.Backend)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Backend, c.Backend, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Backend, c.Mono)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Backend, c.Backend, c.Mono)
}

// StartTimerUseCase returns a new StartTimer use case.
func (c *Container) StartTimerUseCase() *usecase.StartTimer {
	return usecase.NewStartTimer(c.Backend, c.Mono, c.Logger)
}

// EndTimerUseCase returns a new EndTimer use case.
func (c *Container) EndTimerUseCase() *usecase.EndTimer {
	return usecase.NewEndTimer(c.Backend, c.Mono, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Backend, c.Clock, c.Mono, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Backend, c.Backend, c.Logger)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Backend, c.Backend, c.Clock, c.Logger)
}

// AddNoteUseCase returns a new AddNote use case.
func (c *Container) AddNoteUseCase() *usecase.AddNote {
	return usecase.NewAddNote(c.Backend, c.Backend, c.Clock, c.Logger)
}

// ListNotesUseCase returns a new ListNotes use case.
func (c *Container) ListNotesUseCase() *usecase.ListNotes {
	return usecase.NewListNotes(c.Backend, c.Backend)
}

// ToggleNoteUseCase returns a new ToggleNote use case.
func (c *Container) ToggleNoteUseCase() *usecase.ToggleNote {
	return usecase.NewToggleNote(c.Backend, c.Backend)
}

// EditNoteUseCase returns a new EditNote use case.
func (c *Container) EditNoteUseCase() *usecase.EditNote {
	return usecase.NewEditNote(c.Backend, c.Backend)
}

// DeleteNoteUseCase returns a new DeleteNote use case.
func (c *Container) DeleteNoteUseCase() *usecase.DeleteNote {
	return usecase.NewDeleteNote(c.Backend, c.Backend)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Backend, c.Backend)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Backend, c.Config.DataDir)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// MigrateStoreUseCase returns a MigrateStore use case copying the current
// store into a new store of the given backend at path. An empty path uses
// the backend's default file in the data directory.
func (c *Container) MigrateStoreUseCase(backend, path string) (*usecase.MigrateStore, error) {
	if path == "" {
		target := &domain.Config{Store: domain.StoreConfig{Backend: backend}}
		path = target.ResolveStorePath(c.Config.DataDir)
	}
	if samePath(path, c.Config.StorePath) {
		return nil, fmt.Errorf("destination %s is the current store", path)
	}
	dest, err := OpenBackend(backend, path)
	if err != nil {
		return nil, err
	}
	c.track(dest)
	return usecase.NewMigrateStore(c.Backend, dest, c.Logger), nil
}

// samePath reports whether a and b name the same file after making both absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
