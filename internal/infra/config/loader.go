// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/tasktimer/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/tasktimer)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (data dir + global).
// The data dir config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(domain.DataConfigPath(l.dataDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- data dir (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	fc, err := l.loadGlobal()
	if err != nil {
		return nil, err
	}
	return fc.cfg, nil
}

func (l *Loader) loadGlobal() (*fileConfig, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// fileConfig is a config parsed from one file, with the booleans it set explicitly.
type fileConfig struct {
	cfg          *domain.Config
	multiUserSet bool
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *fileConfig {
	res := &fileConfig{cfg: &domain.Config{}}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.cfg.Store.Backend = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.cfg.Store.Path = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.cfg.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "user":
			for k, v := range m {
				switch k {
				case "name":
					if s, ok := v.(string); ok {
						res.cfg.User.Name = s
					}
				case "multi_user":
					if b, ok := v.(bool); ok {
						res.cfg.User.MultiUser = b
						res.multiUserSet = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [user]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.cfg.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base *domain.Config, override *fileConfig) *domain.Config {
	o := override.cfg
	result := &domain.Config{
		Store:    base.Store,
		Log:      base.Log,
		User:     base.User,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, o.Warnings...)

	if o.Store.Backend != "" {
		result.Store.Backend = o.Store.Backend
	}
	if o.Store.Path != "" {
		result.Store.Path = o.Store.Path
	}
	if o.Log.Level != "" {
		result.Log.Level = o.Log.Level
	}
	if o.User.Name != "" {
		result.User.Name = o.User.Name
	}
	if override.multiUserSet {
		result.User.MultiUser = o.User.MultiUser
	}
	return result
}

// Render encodes cfg as TOML, for displaying the effective configuration.
func Render(cfg *domain.Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
