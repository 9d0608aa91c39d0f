package memfs

import (
	"fmt"
	"io/fs"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/hupe1980/rexfs"
)

// Registry maps paths to shared in-memory buffers.
//
// A Registry is an explicit object: create one per test (or per test run) and
// inject it into the FS values that should see the same files. Registries never
// share state with each other. Safe for concurrent use.
type Registry struct {
	files cmap.ConcurrentMap[string, *buffer]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		files: cmap.New[*buffer](),
	}
}

// Seed stores a copy of data under name, replacing any existing entry.
// Handles already open on a replaced entry keep reading the old contents.
func (r *Registry) Seed(name string, data []byte) {
	r.files.Upsert(name, newBuffer(data), func(exist bool, old, fresh *buffer) *buffer {
		if exist {
			old.mu.Lock()
			old.unregisterLocked()
			old.mu.Unlock()
		}
		return fresh
	})
}

// Extract removes name from the registry and returns a copy of its contents.
//
// Extraction requires that no open handle still shares the buffer. If one does,
// the entry is left in place and an error wrapping rexfs.ErrInvariant is
// returned: the harness forgot to close a handle before asserting.
func (r *Registry) Extract(name string) ([]byte, error) {
	var (
		found   bool
		handles int
		out     []byte
	)

	r.files.RemoveCb(name, func(_ string, b *buffer, exists bool) bool {
		found = exists
		if !exists {
			return false
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		if b.handles > 0 {
			handles = b.handles
			return false
		}
		out = b.snapshotLocked()
		b.unregisterLocked()
		return true
	})

	switch {
	case !found:
		return nil, &fs.PathError{Op: "extract", Path: name, Err: rexfs.ErrNotFound}
	case handles > 0:
		return nil, &rexfs.InvariantError{
			Op:     "extract",
			Path:   name,
			Reason: fmt.Sprintf("%d open handle(s) still share the buffer", handles),
		}
	}
	return out, nil
}

// MustExtract is like Extract but panics on error.
func (r *Registry) MustExtract(name string) []byte {
	data, err := r.Extract(name)
	if err != nil {
		panic(err)
	}
	return data
}

// Has reports whether name is present.
func (r *Registry) Has(name string) bool {
	return r.files.Has(name)
}

// Size returns the current length of name's contents.
func (r *Registry) Size(name string) (int, bool) {
	b, ok := r.files.Get(name)
	if !ok {
		return 0, false
	}
	return b.size(), true
}

// Names returns the sorted list of present paths.
func (r *Registry) Names() []string {
	names := r.files.Keys()
	sort.Strings(names)
	return names
}

// Len returns the number of present paths.
func (r *Registry) Len() int {
	return r.files.Count()
}

// Clear drops every entry. Open handles keep working on their buffers.
func (r *Registry) Clear() {
	for _, name := range r.files.Keys() {
		r.files.RemoveCb(name, func(_ string, b *buffer, exists bool) bool {
			if !exists {
				return false
			}
			b.mu.Lock()
			b.unregisterLocked()
			b.mu.Unlock()
			return true
		})
	}
}

// open returns a new handle on the buffer registered under name.
func (r *Registry) open(name string) (*file, error) {
	for {
		b, ok := r.files.Get(name)
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: name, Err: rexfs.ErrNotFound}
		}
		// A failed acquire means the entry was replaced or extracted
		// between Get and acquire.
		if b.acquire() {
			return newFile(name, b), nil
		}
	}
}

// create registers a fresh buffer under name and returns a handle on it.
func (r *Registry) create(name string) (*file, error) {
	b := newBuffer(nil)
	b.handles = 1

	if !r.files.SetIfAbsent(name, b) {
		b.discard()
		return nil, &fs.PathError{Op: "create", Path: name, Err: rexfs.ErrExist}
	}
	return newFile(name, b), nil
}
