// Package config loads the rexfs CLI backend configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/rexfs/compressfs"
)

// Backend types.
const (
	TypeLocal = "local"
	TypeMinIO = "minio"
	TypeS3    = "s3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config represents the full CLI configuration.
type Config struct {
	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Parallelism bounds concurrent copies in cp.
	Parallelism int `yaml:"parallelism"`

	// Dump
	DumpWidth int `yaml:"dump_width"`

	Backends map[string]Backend `yaml:"backends"`
}

// Backend describes one named storage backend.
type Backend struct {
	Type string `yaml:"type"`

	// local
	Root string `yaml:"root"`

	// minio, s3
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	Region    string `yaml:"region"`
	PathStyle bool   `yaml:"path_style"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`

	// s3
	ExclusiveCreate bool `yaml:"exclusive_create"`

	// Decorators, applied to every backend type.
	Compress  string `yaml:"compress"`
	RateLimit int64  `yaml:"rate_limit"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel:    "warn",
		LogFormat:   "text",
		Parallelism: 4,
		DumpWidth:   16,
		Backends:    map[string]Backend{},
	}
}

// Load reads path on top of Defaults. ${VAR} references in credentials are
// expanded from the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Backends == nil {
		cfg.Backends = map[string]Backend{}
	}

	for name, b := range cfg.Backends {
		b.AccessKey = os.ExpandEnv(b.AccessKey)
		b.SecretKey = os.ExpandEnv(b.SecretKey)
		cfg.Backends[name] = b
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config for missing or conflicting settings.
func (c Config) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be >= 1, got %d", ErrInvalid, c.Parallelism)
	}
	if c.DumpWidth < 1 {
		return fmt.Errorf("%w: dump_width must be >= 1, got %d", ErrInvalid, c.DumpWidth)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}

	var errs []error
	for _, name := range c.Names() {
		if err := c.Backends[name].validate(); err != nil {
			errs = append(errs, fmt.Errorf("backend %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Names returns the backend names in sorted order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Backends))
	for name := range c.Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Backend looks up a named backend.
func (c Config) Backend(name string) (Backend, bool) {
	b, ok := c.Backends[name]
	return b, ok
}

func (b Backend) validate() error {
	switch b.Type {
	case TypeLocal:
		if b.Bucket != "" || b.Endpoint != "" {
			return fmt.Errorf("%w: local backend takes root, not bucket/endpoint", ErrInvalid)
		}
	case TypeMinIO:
		if b.Endpoint == "" {
			return fmt.Errorf("%w: minio backend requires endpoint", ErrInvalid)
		}
		if b.Bucket == "" {
			return fmt.Errorf("%w: minio backend requires bucket", ErrInvalid)
		}
	case TypeS3:
		if b.Bucket == "" {
			return fmt.Errorf("%w: s3 backend requires bucket", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, b.Type)
	}

	if b.ExclusiveCreate && b.Type != TypeS3 {
		return fmt.Errorf("%w: exclusive_create is only supported by s3", ErrInvalid)
	}
	if b.Compress != "" {
		if _, err := compressfs.ParseCodec(b.Compress); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if b.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must be >= 0", ErrInvalid)
	}
	return nil
}
