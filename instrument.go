package rexfs

import (
	"context"
	"errors"
	"io"
	"time"
)

// InstrumentedFS decorates a FileSystem with logging and metrics.
type InstrumentedFS struct {
	inner   FileSystem
	logger  *Logger
	metrics MetricsCollector
}

// Instrument wraps fsys so every Open, Create, Read and Write is reported to
// the configured logger and metrics collector.
func Instrument(fsys FileSystem, optFns ...Option) *InstrumentedFS {
	o := ApplyOptions(optFns)
	return &InstrumentedFS{
		inner:   fsys,
		logger:  o.Logger,
		metrics: o.Metrics,
	}
}

// Open implements FileSystem.
func (s *InstrumentedFS) Open(name string) (File, error) {
	start := time.Now()
	f, err := s.inner.Open(name)
	s.metrics.RecordOpen(time.Since(start), err)
	s.logger.LogOpen(context.Background(), name, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedFile{File: f, name: name, fs: s}, nil
}

// Create implements FileSystem.
func (s *InstrumentedFS) Create(name string) (File, error) {
	start := time.Now()
	f, err := s.inner.Create(name)
	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(context.Background(), name, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedFile{File: f, name: name, fs: s}, nil
}

// Unwrap returns the decorated FileSystem.
func (s *InstrumentedFS) Unwrap() FileSystem {
	return s.inner
}

type instrumentedFile struct {
	File
	name string
	fs   *InstrumentedFS
}

func (f *instrumentedFile) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	f.fs.metrics.RecordRead(n, err)
	return n, err
}

func (f *instrumentedFile) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	f.fs.metrics.RecordWrite(n, err)
	return n, err
}

func (f *instrumentedFile) Close() error {
	err := f.File.Close()
	f.fs.logger.LogClose(context.Background(), f.name, err)
	return err
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
