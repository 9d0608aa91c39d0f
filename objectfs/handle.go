package objectfs

import (
	"io"
	"io/fs"
	"sync"

	"github.com/hupe1980/rexfs"
)

// Reader is a read-only rexfs.File over an object body.
type Reader struct {
	name   string
	body   io.ReadCloser
	mu     sync.Mutex
	closed bool
}

var _ rexfs.File = (*Reader)(nil)

// NewReader wraps body. Closing the Reader closes body.
func NewReader(name string, body io.ReadCloser) *Reader {
	return &Reader{name: name, body: body}
}

func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, &fs.PathError{Op: "read", Path: r.name, Err: fs.ErrClosed}
	}
	return r.body.Read(p)
}

func (r *Reader) Write([]byte) (int, error) {
	return 0, &fs.PathError{Op: "write", Path: r.name, Err: rexfs.ErrReadOnly}
}

// Sync is a no-op for readers.
func (r *Reader) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return &fs.PathError{Op: "sync", Path: r.name, Err: fs.ErrClosed}
	}
	return nil
}

func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return &fs.PathError{Op: "close", Path: r.name, Err: fs.ErrClosed}
	}
	r.closed = true
	return r.body.Close()
}

// UploadFunc consumes body until EOF and returns the upload result.
type UploadFunc func(body io.Reader) error

// Writer is a write-only rexfs.File that streams into a background upload.
// The object is committed when Close returns nil.
type Writer struct {
	name     string
	pw       *io.PipeWriter
	done     chan error
	closeMu  sync.Mutex
	closed   bool
	closeErr error
}

var _ rexfs.File = (*Writer)(nil)

// NewWriter starts upload in a goroutine fed by the returned Writer.
func NewWriter(name string, upload UploadFunc) *Writer {
	pr, pw := io.Pipe()
	w := &Writer{
		name: name,
		pw:   pw,
		done: make(chan error, 1),
	}

	// Start upload in background
	go func() {
		err := upload(pr)
		// Unblock pending writes if the upload stopped early.
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w
}

func (w *Writer) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: w.name, Err: rexfs.ErrWriteOnly}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.closeMu.Lock()
	closed := w.closed
	w.closeMu.Unlock()

	if closed {
		return 0, &fs.PathError{Op: "write", Path: w.name, Err: fs.ErrClosed}
	}
	return w.pw.Write(p)
}

// Sync is a no-op: the upload is only finalized by Close.
func (w *Writer) Sync() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()

	if w.closed {
		return &fs.PathError{Op: "sync", Path: w.name, Err: fs.ErrClosed}
	}
	return nil
}

// Close ends the stream and waits for the upload.
// Repeated calls return the first result.
func (w *Writer) Close() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()

	if w.closed {
		return w.closeErr
	}
	w.closed = true

	if err := w.pw.Close(); err != nil {
		w.closeErr = err
		return err
	}
	w.closeErr = <-w.done
	return w.closeErr
}

// Abort cancels the upload. The object is not created.
func (w *Writer) Abort(err error) error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()

	if w.closed {
		return w.closeErr
	}
	w.closed = true
	if err == nil {
		err = io.ErrClosedPipe
	}
	_ = w.pw.CloseWithError(err)
	<-w.done
	w.closeErr = err
	return nil
}
