package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/compressfs"
	"github.com/hupe1980/rexfs/internal/config"
	"github.com/hupe1980/rexfs/localfs"
	"github.com/hupe1980/rexfs/throttlefs"
)

// openFunc builds the undecorated FileSystem for a configured backend.
type openFunc func(ctx context.Context, name string, b config.Backend, logger *rexfs.Logger) (rexfs.FileSystem, error)

// app is the state shared by all subcommands.
type app struct {
	cfg        config.Config
	logger     *rexfs.Logger
	metrics    *rexfs.BasicMetricsCollector
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
	open       openFunc

	mu       sync.Mutex
	backends map[string]rexfs.FileSystem
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		cfg:        config.Defaults(),
		logger:     rexfs.NoopLogger(),
		metrics:    &rexfs.BasicMetricsCollector{},
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: func() bool { return false },
		open:       openBackend,
		backends:   make(map[string]rexfs.FileSystem),
	}
}

func (a *app) configure(cfg config.Config, logger *rexfs.Logger) {
	a.cfg = cfg
	a.logger = logger
}

// resolve returns the FileSystem serving loc. Backends are built once and
// shared between concurrent copies.
func (a *app) resolve(ctx context.Context, loc location) (rexfs.FileSystem, error) {
	key := loc.backendKey()

	a.mu.Lock()
	defer a.mu.Unlock()

	if fsys, ok := a.backends[key]; ok {
		return fsys, nil
	}

	var fsys rexfs.FileSystem
	if loc.Scheme == schemeFile {
		fsys = localfs.New("")
	} else {
		b, ok := a.cfg.Backend(loc.Backend)
		if !ok {
			return nil, fmt.Errorf("unknown backend %q", loc.Backend)
		}
		if b.Type != loc.Scheme {
			return nil, fmt.Errorf("backend %q has type %s, not %s", loc.Backend, b.Type, loc.Scheme)
		}

		base, err := a.open(ctx, loc.Backend, b, a.logger)
		if err != nil {
			return nil, fmt.Errorf("backend %q: %w", loc.Backend, err)
		}
		fsys, err = decorate(base, b)
		if err != nil {
			return nil, fmt.Errorf("backend %q: %w", loc.Backend, err)
		}
	}

	fsys = rexfs.Instrument(fsys,
		rexfs.WithLogger(a.logger.WithBackend(key)),
		rexfs.WithMetrics(a.metrics),
	)
	a.backends[key] = fsys
	return fsys, nil
}

// identity returns a key shared by every location that names the same file.
// Object keys compare literally.
func (a *app) identity(loc location) string {
	if p, ok := a.hostPath(loc); ok {
		return schemeFile + "://" + p
	}
	return loc.String()
}

// hostPath returns the absolute host path behind loc when it lives on the
// local disk, either directly or through a configured local backend.
func (a *app) hostPath(loc location) (string, bool) {
	var p string
	switch loc.Scheme {
	case schemeFile:
		p = loc.Name
	case config.TypeLocal:
		b, ok := a.cfg.Backend(loc.Backend)
		if !ok || b.Type != config.TypeLocal {
			return "", false
		}
		p = filepath.Join(b.Root, loc.Name)
	default:
		return "", false
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p), true
	}
	return abs, true
}

// sameFile reports whether src and dst name one file. Host files are also
// compared by inode, which catches hard links and symlinks.
func (a *app) sameFile(src, dst location) bool {
	if a.identity(src) == a.identity(dst) {
		return true
	}

	sp, sok := a.hostPath(src)
	dp, dok := a.hostPath(dst)
	if !sok || !dok {
		return false
	}
	si, err := os.Stat(sp)
	if err != nil {
		return false
	}
	di, err := os.Stat(dp)
	if err != nil {
		return false
	}
	return os.SameFile(si, di)
}

// decorate stacks the configured decorators on base. The rate limit applies
// to the bytes that reach the backend, so it sits below compression.
func decorate(base rexfs.FileSystem, b config.Backend) (rexfs.FileSystem, error) {
	fsys := base
	if b.RateLimit > 0 {
		fsys = throttlefs.New(fsys, throttlefs.Config{BytesPerSec: b.RateLimit})
	}
	if b.Compress != "" {
		codec, err := compressfs.ParseCodec(b.Compress)
		if err != nil {
			return nil, err
		}
		if fsys, err = compressfs.New(fsys, codec); err != nil {
			return nil, err
		}
	}
	return fsys, nil
}

func newLogger(cfg config.Config, w io.Writer) (*rexfs.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return rexfs.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return rexfs.NewLogger(slog.NewTextHandler(w, opts)), nil
}
