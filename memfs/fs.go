package memfs

import (
	"context"

	"github.com/hupe1980/rexfs"
)

// FS is an in-memory FileSystem backed by a Registry.
//
// Create is exclusive: it fails with rexfs.ErrExist when the name is present.
// Several FS values may share one Registry.
type FS struct {
	reg    *Registry
	logger *rexfs.Logger
}

var _ rexfs.FileSystem = (*FS)(nil)

// New creates an FS over reg. A nil reg gets a fresh private registry.
func New(reg *Registry, optFns ...rexfs.Option) *FS {
	if reg == nil {
		reg = NewRegistry()
	}
	o := rexfs.ApplyOptions(optFns)
	return &FS{
		reg:    reg,
		logger: o.Logger.WithBackend("memfs"),
	}
}

// Open returns a handle with its own cursor over the buffer stored at name.
func (s *FS) Open(name string) (rexfs.File, error) {
	f, err := s.reg.open(name)
	s.logger.LogOpen(context.Background(), name, err)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create registers an empty buffer under name.
// It fails with rexfs.ErrExist if name is already present.
func (s *FS) Create(name string) (rexfs.File, error) {
	f, err := s.reg.create(name)
	s.logger.LogCreate(context.Background(), name, err)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Registry returns the registry backing s.
func (s *FS) Registry() *Registry {
	return s.reg
}

// Extract removes name and returns its contents. See Registry.Extract.
func (s *FS) Extract(name string) ([]byte, error) {
	data, err := s.reg.Extract(name)
	s.logger.LogExtract(context.Background(), name, len(data), err)
	return data, err
}

// MustExtract is like Extract but panics on error.
func (s *FS) MustExtract(name string) []byte {
	data, err := s.Extract(name)
	if err != nil {
		panic(err)
	}
	return data
}

// Seed stores a copy of data under name unconditionally. See Registry.Seed.
func (s *FS) Seed(name string, data []byte) {
	s.reg.Seed(name, data)
}
