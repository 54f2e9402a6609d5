package domain

import (
	"path/filepath"
	"strings"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Store    StoreConfig `toml:"store"`
	Log      LogConfig   `toml:"log"`
	User     UserConfig  `toml:"user"`
}

// StoreConfig holds storage settings from [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "sqlite" (default) or "json"
	Path    string `toml:"path,omitempty"`    // Store file path (default: inside the data dir)
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// UserConfig holds identity settings from [user] section.
type UserConfig struct {
	Name      string `toml:"name,omitempty"`       // Default caller identity
	MultiUser bool   `toml:"multi_user,omitempty"` // Restrict tasks to their owner
}

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultBackend  = BackendSQLite
)

// Directory and file names for tasktimer.
const (
	AppDirName     = "tasktimer"   // Directory name for tasktimer data and config
	ConfigFileName = "config.toml" // Config file name
	SQLiteFileName = "tasks.db"    // SQLite store file name
	JSONFileName   = "tasks.json"  // JSON store file name
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Backend: DefaultBackend},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// ResolveStorePath returns the configured store path, or the backend's default file in dataDir.
// A relative configured path is resolved against dataDir.
func (c *Config) ResolveStorePath(dataDir string) string {
	if c.Store.Path != "" {
		if filepath.IsAbs(c.Store.Path) {
			return c.Store.Path
		}
		return filepath.Join(dataDir, c.Store.Path)
	}
	if c.Backend() == BackendJSON {
		return filepath.Join(dataDir, JSONFileName)
	}
	return filepath.Join(dataDir, SQLiteFileName)
}

// Backend returns the normalized store backend name.
func (c *Config) Backend() string {
	b := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if b == "" {
		return DefaultBackend
	}
	return b
}

// ResolveCaller picks the caller identity: explicit value first, then the configured name.
// In single-user mode the identity is always empty.
func (c *Config) ResolveCaller(explicit string) (string, error) {
	if !c.User.MultiUser {
		return "", nil
	}
	caller := strings.TrimSpace(explicit)
	if caller == "" {
		caller = strings.TrimSpace(c.User.Name)
	}
	if caller == "" {
		return "", ErrIdentityRequired
	}
	return caller, nil
}

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// DataConfigPath returns the config path inside the data directory.
func DataConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}
