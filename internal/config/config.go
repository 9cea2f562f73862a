// Package config provides configuration loading and validation for nslook.
// It handles reading configuration from files, providing defaults, and ensuring
// all settings are usable before a lookup starts.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lc/nslook/internal/filesys"
	"github.com/lc/nslook/internal/resolvconf"
	"github.com/lc/nslook/internal/transport"
	"github.com/lc/nslook/internal/wire"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoConfig is returned when the configuration file is not found.
	ErrNoConfig = errors.New("configuration file not found")
	// ErrConfigExists is returned by Init when a configuration file is already present.
	ErrConfigExists = errors.New("configuration file already exists")
)

const (
	// DefaultConfigPath is the default path for the configuration file,
	// relative to the user's home directory.
	DefaultConfigPath = ".nslook/config.yaml"
	// DefaultTimeout is the default timeout for a DNS exchange.
	DefaultTimeout = transport.DefaultTimeout
	// MinTimeout and MaxTimeout bound the configurable timeout.
	MinTimeout = 100 * time.Millisecond
	MaxTimeout = time.Minute
)

// Config holds the application configuration.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Query    QueryConfig    `yaml:"query"`
}

// ResolverConfig holds settings for reaching the resolver.
type ResolverConfig struct {
	// Server overrides resolver discovery when set.
	Server     string        `yaml:"server"`
	ResolvConf string        `yaml:"resolv_conf"`
	Timeout    time.Duration `yaml:"timeout"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	RecordType  string `yaml:"record_type"`
	AllSections bool   `yaml:"all_sections"`
}

// Provider defines the interface for loading configuration.
type Provider interface {
	Load() (*Config, error)
}

// FSProvider implements Provider using the local filesystem.
type FSProvider struct {
	fs   filesys.ReadWriteFS
	path string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a new configuration provider using the default configuration path.
// It uses the OS filesystem and the user's home directory to locate the configuration file.
// If the home directory cannot be determined, it falls back to the current directory.
func New() *FSProvider {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine home directory: %v\n", err)
		home = ""
	}
	return NewWithPath(filesys.OS(), filepath.Join(home, DefaultConfigPath))
}

// NewWithPath creates a new provider with a specific config path.
// It allows specifying both the filesystem implementation and the path to use.
func NewWithPath(fs filesys.ReadWriteFS, path string) *FSProvider {
	return &FSProvider{
		fs:   fs,
		path: path,
	}
}

// Path returns the configuration file path.
func (p *FSProvider) Path() string { return p.path }

// Default returns a default configuration with preset values.
// This is used when no configuration file exists.
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			ResolvConf: resolvconf.DefaultPath,
			Timeout:    DefaultTimeout,
		},
		Query: QueryConfig{
			RecordType: wire.DefaultRecordType,
		},
	}
}

// Load loads the configuration from the provider's path. Keys missing from
// the file keep their default values.
func (p *FSProvider) Load() (*Config, error) {
	cfg, err := p.loadAndParse()
	if err != nil {
		if errors.Is(err, ErrNoConfig) {
			return Default(), nil
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Init writes the default configuration to the provider's path, creating
// the parent directory when needed. It refuses to overwrite an existing file.
func (p *FSProvider) Init() error {
	if _, err := p.fs.Stat(p.path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, p.path)
	}
	if err := p.ensureConfigDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding config file: %w", err)
	}
	if err := p.fs.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs error
	if strings.TrimSpace(c.Resolver.ResolvConf) == "" {
		errs = multierr.Append(errs, errors.New("resolv.conf path cannot be empty"))
	}
	if strings.ContainsAny(c.Resolver.Server, " \t\n") {
		errs = multierr.Append(errs, fmt.Errorf("resolver server %q contains whitespace", c.Resolver.Server))
	}
	if c.Resolver.Timeout < MinTimeout || c.Resolver.Timeout > MaxTimeout {
		errs = multierr.Append(errs, fmt.Errorf("timeout must be between %s and %s", MinTimeout, MaxTimeout))
	}
	if _, known := wire.TypeCode(c.Query.RecordType); !known {
		errs = multierr.Append(errs, fmt.Errorf("unsupported record type %q", c.Query.RecordType))
	}
	return errs
}

func (p *FSProvider) ensureConfigDir() error {
	dir := filepath.Dir(p.path)
	if _, err := p.fs.Stat(dir); os.IsNotExist(err) {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return nil
}

func (p *FSProvider) loadAndParse() (*Config, error) {
	f, err := p.fs.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	// an empty file decodes to io.EOF and keeps the defaults
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	return cfg, nil
}
