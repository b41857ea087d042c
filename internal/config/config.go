// Package config provides reading and writing of quilter configuration.
// Supports both global (~/.quilter/config.yaml) and local (.quilter/config.yaml).
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
	// ScopeGlobal is user-wide config in ~/.quilter/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .quilter/config.yaml
	ScopeLocal
)

// User identifies who uploads netlists from the CLI.
type User struct {
	Email string `yaml:"email,omitempty"`
}

// Server holds HTTP server options.
type Server struct {
	Addr           string `yaml:"addr,omitempty"`
	FrontendOrigin string `yaml:"frontend_origin,omitempty"`
	StaticDir      string `yaml:"static_dir,omitempty"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend  string `yaml:"backend,omitempty"`
	MongoURL string `yaml:"mongo_url,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxName    *int   `yaml:"max_name,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Defaults applied when not configured.
const (
	DefaultAddr           = ":8000"
	DefaultFrontendOrigin = "*"
	DefaultStaticDir      = "frontend/dist"
	DefaultBackend        = BackendSQLite
	DefaultMongoURL       = "mongodb://localhost:27017"
	DefaultMaxName        = 255
	DefaultMaxContent     = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinMaxName    = 1
	MaxMaxName    = 4096
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB
)

// Environment variables that override file configuration. Names match the
// ones earlier deployments were configured with.
const (
	EnvAddr           = "QUILTER_ADDR"
	EnvFrontendOrigin = "FRONTEND_ORIGIN"
	EnvMongoURL       = "MONGO_URL"
)

// Config contains configuration for quilter.
type Config struct {
	User   User   `yaml:"user,omitempty"`
	Server Server `yaml:"server,omitempty"`
	Store  Store  `yaml:"store,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "", BackendSQLite, BackendMongo:
	default:
		return fmt.Errorf("%w: store.backend must be %q or %q, got %q",
			ErrInvalidValue, BackendSQLite, BackendMongo, c.Store.Backend)
	}
	if c.Limits.MaxName != nil {
		v := *c.Limits.MaxName
		if v < MinMaxName || v > MaxMaxName {
			return fmt.Errorf("%w: max_name must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxName, MaxMaxName, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	return nil
}

// Addr returns the HTTP listen address: $QUILTER_ADDR, then config, then ":8000".
func (c *Config) Addr() string {
	return firstSet(os.Getenv(EnvAddr), c.Server.Addr, DefaultAddr)
}

// FrontendOrigin returns the allowed CORS origin: $FRONTEND_ORIGIN, then
// config, then "*".
func (c *Config) FrontendOrigin() string {
	return firstSet(os.Getenv(EnvFrontendOrigin), c.Server.FrontendOrigin, DefaultFrontendOrigin)
}

// StaticDir returns the directory holding the built web application.
func (c *Config) StaticDir() string {
	return firstSet(c.Server.StaticDir, DefaultStaticDir)
}

// Backend returns the configured store backend (defaults to sqlite).
func (c *Config) Backend() string {
	return firstSet(c.Store.Backend, DefaultBackend)
}

// MongoURL returns the MongoDB connection string: $MONGO_URL, then config,
// then the local default.
func (c *Config) MongoURL() string {
	return firstSet(os.Getenv(EnvMongoURL), c.Store.MongoURL, DefaultMongoURL)
}

// MaxName returns the maximum user or filename length in bytes (defaults to 255).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxContent returns the maximum upload size in bytes (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".quilter", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.quilter/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quilter", "config.yaml")
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
