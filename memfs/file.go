package memfs

import (
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/internal/mem"
)

// file is a handle on a shared buffer with its own read cursor.
//
// Reads see everything appended to the buffer by any holder, including
// appends made after the handle was opened. Writes always append.
type file struct {
	name string
	buf  *buffer

	mu     sync.Mutex // guards off and closed
	off    int
	closed bool
}

var _ rexfs.File = (*file)(nil)

func newFile(name string, b *buffer) *file {
	return &file{name: name, buf: b}
}

// Read copies up to len(p) bytes from the cursor and advances it.
// At the end of the buffer it returns 0, io.EOF.
func (f *file) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrClosed}
	}
	if len(p) == 0 {
		return 0, nil
	}

	f.buf.mu.Lock()
	defer f.buf.mu.Unlock()

	size := f.buf.data.Len()
	if f.off > size {
		return 0, &rexfs.InvariantError{
			Op:     "read",
			Path:   f.name,
			Reason: fmt.Sprintf("cursor %d past end of buffer (%d bytes)", f.off, size),
		}
	}

	n := min(size-f.off, len(p))
	if n == 0 {
		return 0, io.EOF
	}
	mem.Copy(p[:n], f.buf.data.B[f.off:f.off+n])
	f.off += n
	return n, nil
}

// Write appends p to the buffer. It accepts all of p.
func (f *file) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: fs.ErrClosed}
	}

	f.buf.mu.Lock()
	defer f.buf.mu.Unlock()

	// Appends only; there is no seek.
	_, _ = f.buf.data.Write(p)
	return len(p), nil
}

// Sync is a no-op: there is no persistence tier behind the buffer.
func (f *file) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return &fs.PathError{Op: "sync", Path: f.name, Err: fs.ErrClosed}
	}
	return nil
}

// Close releases the handle's hold on the buffer.
func (f *file) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return &fs.PathError{Op: "close", Path: f.name, Err: fs.ErrClosed}
	}
	f.closed = true
	f.buf.release()
	return nil
}
