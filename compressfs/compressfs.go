package compressfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/rexfs"
)

// Codec selects the stream format.
type Codec uint8

const (
	// Zstd uses zstd frames (better ratio, good for cold data).
	Zstd Codec = iota + 1
	// LZ4 uses lz4 frames (fast, good for hot data).
	LZ4
)

// ErrUnknownCodec is returned for an unsupported Codec value or name.
var ErrUnknownCodec = errors.New("unknown codec")

func (c Codec) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ParseCodec maps a codec name ("zstd", "lz4") to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// FS compresses everything written through Create and decompresses
// everything read through Open. Errors from the inner backend, including
// rexfs.ErrNotFound and rexfs.ErrExist, pass through unchanged.
type FS struct {
	inner rexfs.FileSystem
	codec Codec
	level zstd.EncoderLevel
}

var _ rexfs.FileSystem = (*FS)(nil)

// Option configures an FS.
type Option func(*FS)

// WithZstdLevel sets the zstd encoder level. Ignored for LZ4.
func WithZstdLevel(level zstd.EncoderLevel) Option {
	return func(s *FS) {
		s.level = level
	}
}

// New wraps inner with codec.
func New(inner rexfs.FileSystem, codec Codec, optFns ...Option) (*FS, error) {
	if codec != Zstd && codec != LZ4 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
	s := &FS{
		inner: inner,
		codec: codec,
		level: zstd.SpeedDefault,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s, nil
}

// Codec returns the codec in use.
func (s *FS) Codec() Codec {
	return s.codec
}

// Open returns a read-only handle yielding decompressed bytes.
func (s *FS) Open(name string) (rexfs.File, error) {
	f, err := s.inner.Open(name)
	if err != nil {
		return nil, err
	}

	r := &reader{name: name, inner: f}
	switch s.codec {
	case Zstd:
		dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r.dec = dec
		r.release = dec.Close
	case LZ4:
		r.dec = lz4.NewReader(f)
	}
	return r, nil
}

// Create returns a write-only handle compressing into a new inner file.
// The trailing frame is written by Close.
func (s *FS) Create(name string) (rexfs.File, error) {
	f, err := s.inner.Create(name)
	if err != nil {
		return nil, err
	}

	w := &writer{name: name, inner: f}
	switch s.codec {
	case Zstd:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(s.level), zstd.WithEncoderConcurrency(1))
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		w.enc = enc
	case LZ4:
		w.enc = lz4.NewWriter(f)
	}
	return w, nil
}

type encoder interface {
	io.WriteCloser
	Flush() error
}

type writer struct {
	name   string
	inner  rexfs.File
	enc    encoder
	closed bool
}

func (w *writer) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: w.name, Err: rexfs.ErrWriteOnly}
}

func (w *writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, &fs.PathError{Op: "write", Path: w.name, Err: fs.ErrClosed}
	}
	return w.enc.Write(p)
}

// Sync flushes pending compressed blocks to the inner file and syncs it.
func (w *writer) Sync() error {
	if w.closed {
		return &fs.PathError{Op: "sync", Path: w.name, Err: fs.ErrClosed}
	}
	if err := w.enc.Flush(); err != nil {
		return err
	}
	return w.inner.Sync()
}

func (w *writer) Close() error {
	if w.closed {
		return &fs.PathError{Op: "close", Path: w.name, Err: fs.ErrClosed}
	}
	w.closed = true
	return errors.Join(w.enc.Close(), w.inner.Close())
}

type reader struct {
	name    string
	inner   rexfs.File
	dec     io.Reader
	release func()
	closed  bool
}

func (r *reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, &fs.PathError{Op: "read", Path: r.name, Err: fs.ErrClosed}
	}
	return r.dec.Read(p)
}

func (r *reader) Write([]byte) (int, error) {
	return 0, &fs.PathError{Op: "write", Path: r.name, Err: rexfs.ErrReadOnly}
}

// Sync is a no-op for readers.
func (r *reader) Sync() error {
	if r.closed {
		return &fs.PathError{Op: "sync", Path: r.name, Err: fs.ErrClosed}
	}
	return nil
}

func (r *reader) Close() error {
	if r.closed {
		return &fs.PathError{Op: "close", Path: r.name, Err: fs.ErrClosed}
	}
	r.closed = true
	if r.release != nil {
		r.release()
	}
	return r.inner.Close()
}
