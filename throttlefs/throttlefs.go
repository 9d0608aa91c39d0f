package throttlefs

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/hupe1980/rexfs"
)

// Config holds throughput limits.
type Config struct {
	// BytesPerSec is the sustained rate shared by all handles.
	// If 0, unlimited.
	BytesPerSec int64

	// Burst is the largest single grant. Reads and writes larger than
	// Burst are split. If 0, defaults to BytesPerSec.
	Burst int
}

// FS limits the combined read and write throughput of an inner FileSystem.
type FS struct {
	inner   rexfs.FileSystem
	limiter *rate.Limiter // nil if unlimited
	burst   int
}

var _ rexfs.FileSystem = (*FS)(nil)

// New wraps inner with the limits in cfg.
func New(inner rexfs.FileSystem, cfg Config) *FS {
	s := &FS{inner: inner}
	if cfg.BytesPerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.BytesPerSec)
		}
		s.burst = burst
		s.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), burst)
	}
	return s
}

// Open implements rexfs.FileSystem.
func (s *FS) Open(name string) (rexfs.File, error) {
	f, err := s.inner.Open(name)
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

// Create implements rexfs.FileSystem.
func (s *FS) Create(name string) (rexfs.File, error) {
	f, err := s.inner.Create(name)
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *FS) wrap(f rexfs.File) rexfs.File {
	if s.limiter == nil {
		return f
	}
	return &throttledFile{File: f, fs: s}
}

// wait blocks until n bytes may pass.
func (s *FS) wait(n int) error {
	ctx := context.Background()
	for n > 0 {
		chunk := min(n, s.burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

type throttledFile struct {
	rexfs.File
	fs *FS
}

// Read is charged for the bytes actually returned, after the read.
// Short reads therefore never wait for bytes they did not deliver.
func (f *throttledFile) Read(p []byte) (int, error) {
	if len(p) > f.fs.burst {
		p = p[:f.fs.burst]
	}
	n, err := f.File.Read(p)
	if werr := f.fs.wait(n); werr != nil && err == nil {
		err = werr
	}
	return n, err
}

// Write waits for the whole of p before writing it in one call, so the inner
// handle still sees a single append.
func (f *throttledFile) Write(p []byte) (int, error) {
	if err := f.fs.wait(len(p)); err != nil {
		return 0, err
	}
	return f.File.Write(p)
}
