// Package config provides reading and writing of writerd configuration.
// Supports both global (~/.writerd/config.yaml) and local (.writerd/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.writerd/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .writerd/config.yaml
	ScopeLocal
)

// Author represents the author attributed to edits, comments and tracked
// changes.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Track holds track-changes defaults applied to newly created or opened
// documents.
type Track struct {
	Record *bool `yaml:"record,omitempty"`
}

// Export holds export behaviour options.
type Export struct {
	Overwrite *bool `yaml:"overwrite,omitempty"`
}

// Log holds audit log options.
type Log struct {
	Audit *bool `yaml:"audit,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	ContextChars *int `yaml:"context_chars,omitempty"`
	MaxMatches   *int `yaml:"max_matches,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultContextChars = 100
	DefaultMaxMatches   = 500
	DefaultAuthorName   = "writerd"
)

// Validation bounds for configuration values.
const (
	MinContextChars = 1
	MaxContextChars = 65536
	MinMaxMatches   = 1
	MaxMaxMatches   = 1000000
)

// Config contains configuration for writerd.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Track  Track  `yaml:"track,omitempty"`
	Export Export `yaml:"export,omitempty"`
	Log    Log    `yaml:"log,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.ContextChars != nil {
		v := *c.Limits.ContextChars
		if v < MinContextChars || v > MaxContextChars {
			return fmt.Errorf("%w: context_chars must be between %d and %d, got %d",
				ErrInvalidValue, MinContextChars, MaxContextChars, v)
		}
	}
	if c.Limits.MaxMatches != nil {
		v := *c.Limits.MaxMatches
		if v < MinMaxMatches || v > MaxMaxMatches {
			return fmt.Errorf("%w: max_matches must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxMatches, MaxMaxMatches, v)
		}
	}
	return nil
}

// AuthorName returns the configured author name, falling back to the
// tool's own name when unset.
func (c *Config) AuthorName() string {
	if c.Author.Name == "" {
		return DefaultAuthorName
	}
	return c.Author.Name
}

// TrackRecord returns whether new documents start with change recording
// enabled (defaults to false).
func (c *Config) TrackRecord() bool {
	if c.Track.Record == nil {
		return false
	}
	return *c.Track.Record
}

// ExportOverwrite returns whether exports may replace existing files
// (defaults to false).
func (c *Config) ExportOverwrite() bool {
	if c.Export.Overwrite == nil {
		return false
	}
	return *c.Export.Overwrite
}

// AuditEnabled returns whether invocations are recorded to the audit
// log (defaults to true).
func (c *Config) AuditEnabled() bool {
	if c.Log.Audit == nil {
		return true
	}
	return *c.Log.Audit
}

// ContextChars returns the default window for cursor context reads
// (defaults to 100).
func (c *Config) ContextChars() int {
	if c.Limits.ContextChars == nil {
		return DefaultContextChars
	}
	return *c.Limits.ContextChars
}

// MaxMatches returns the maximum number of search matches reported
// (defaults to 500).
func (c *Config) MaxMatches() int {
	if c.Limits.MaxMatches == nil {
		return DefaultMaxMatches
	}
	return *c.Limits.MaxMatches
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".writerd", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.writerd/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".writerd", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
