package faultyfs

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/rexfs"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailOnOpen     bool
	FailOnCreate   bool
	FailOnWrite    bool
	FailAfterBytes int64 // Fail writes that would exceed this many bytes on one handle. 0 disables.
	FailOnRead     bool
	FailOnSync     bool
	FailOnClose    bool
	Err            error
}

func (f Fault) err(fallback error) error {
	if f.Err != nil {
		return f.Err
	}
	if fallback != nil {
		return fallback
	}
	return ErrInjected
}

// FS is a rexfs.FileSystem wrapper that can inject errors.
type FS struct {
	inner   rexfs.FileSystem
	mu      sync.Mutex
	rules   map[string]Fault // Name substring -> Fault
	Default Fault            // Fallback

	// Err is used when a matching Fault carries no error of its own.
	Err         error
	written     int64
	globalLimit int64
}

var _ rexfs.FileSystem = (*FS)(nil)

// New creates a new FS wrapping inner.
func New(inner rexfs.FileSystem) *FS {
	return &FS{
		inner: inner,
		rules: make(map[string]Fault),
		Err:         ErrInjected,
		globalLimit: -1,
	}
}

// Written returns the total bytes written through all handles so far.
func (s *FS) Written() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// SetLimit fails every write once the total across all handles would exceed limit.
// A negative limit disables the check.
func (s *FS) SetLimit(limit int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalLimit = limit
}

// AddRule adds a fault injection rule for names containing pattern.
func (s *FS) AddRule(pattern string, fault Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[pattern] = fault
}

// ClearRules removes every rule.
func (s *FS) ClearRules() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = make(map[string]Fault)
}

// match returns the fault for name. With several matching patterns the
// longest wins, so more specific rules override broad ones.
func (s *FS) match(name string) Fault {
	s.mu.Lock()
	defer s.mu.Unlock()

	fault := s.Default
	best := -1
	for pattern, rule := range s.rules {
		if strings.Contains(name, pattern) && len(pattern) > best {
			fault = rule
			best = len(pattern)
		}
	}
	if fault.Err == nil {
		fault.Err = s.Err
	}
	return fault
}

// Open implements rexfs.FileSystem.
func (s *FS) Open(name string) (rexfs.File, error) {
	fault := s.match(name)
	if fault.FailOnOpen {
		return nil, fmt.Errorf("open %s: %w", name, fault.err(s.Err))
	}

	file, err := s.inner.Open(name)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: s, fault: fault}, nil
}

// Create implements rexfs.FileSystem.
func (s *FS) Create(name string) (rexfs.File, error) {
	fault := s.match(name)
	if fault.FailOnCreate {
		return nil, fmt.Errorf("create %s: %w", name, fault.err(s.Err))
	}

	file, err := s.inner.Create(name)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: s, fault: fault}, nil
}

type faultyFile struct {
	rexfs.File
	fs      *FS
	fault   Fault
	written int64
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.FailOnRead {
		return 0, ff.fault.err(ff.fs.Err)
	}
	return ff.File.Read(p)
}

func (ff *faultyFile) Write(p []byte) (n int, err error) {
	// Check per-file limit FIRST before updating global counter
	if ff.fault.FailOnWrite {
		return 0, ff.fault.err(ff.fs.Err)
	}
	if ff.fault.FailAfterBytes > 0 {
		if ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
			return 0, ff.fault.err(ff.fs.Err)
		}
	}

	ff.fs.mu.Lock()
	globalExceeded := ff.fs.globalLimit >= 0 && ff.fs.written+int64(len(p)) > ff.fs.globalLimit
	if !globalExceeded {
		ff.fs.written += int64(len(p))
	}
	ff.fs.mu.Unlock()

	if globalExceeded {
		return 0, ff.fault.err(ff.fs.Err)
	}

	n, err = ff.File.Write(p)
	if n > 0 {
		ff.written += int64(n)
	}
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err(ff.fs.Err)
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err(ff.fs.Err)
	}
	return ff.File.Close()
}
