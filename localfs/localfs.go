package localfs

import (
	"os"
	"path/filepath"

	"github.com/hupe1980/rexfs"
)

// FS implements rexfs.FileSystem on the host filesystem.
type FS struct {
	root string
}

var _ rexfs.FileSystem = (*FS)(nil)

// New creates an FS that resolves names relative to root.
// An empty root uses names as given.
func New(root string) *FS {
	return &FS{root: root}
}

func (s *FS) path(name string) string {
	if s.root == "" {
		return name
	}
	return filepath.Join(s.root, name)
}

// Open opens an existing file with os.Open.
// A missing file fails with an error matching rexfs.ErrNotFound.
func (s *FS) Open(name string) (rexfs.File, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	adviseSequential(f)
	return f, nil
}

// Create creates or truncates a file with os.Create.
//
// Unlike memfs, an existing file is overwritten rather than rejected.
func (s *FS) Create(name string) (rexfs.File, error) {
	f, err := os.Create(s.path(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Root returns the directory names are resolved against.
func (s *FS) Root() string {
	return s.root
}
