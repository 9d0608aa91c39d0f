package rexfs

import (
	"errors"
	"io"
)

// File is an open stream returned by a FileSystem.
//
// Handles returned by Open are positioned at the start of the existing content.
// Handles returned by Create start empty and only ever append.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	// Sync flushes buffered data to the backing store.
	// Backends without a separate persistence tier return nil.
	Sync() error
}

// FileSystem is the capability every storage backend provides.
type FileSystem interface {
	// Open opens an existing file for reading.
	// Returns an error satisfying errors.Is(err, ErrNotFound) if nothing exists at name.
	Open(name string) (File, error)

	// Create creates a file for writing.
	//
	// Backends differ on occupied names: the in-memory backend fails with
	// ErrExist, the local backend truncates the existing file.
	Create(name string) (File, error)
}

// ReadFile opens name on fsys and reads it to EOF.
func ReadFile(fsys FileSystem, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile creates name on fsys and writes data to it.
func WriteFile(fsys FileSystem, name string, data []byte) error {
	f, err := fsys.Create(name)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Copy streams name from src into a newly created file of the same name on dst.
// It returns the number of bytes copied.
func Copy(dst, src FileSystem, name string) (int64, error) {
	return CopyAs(dst, name, src, name)
}

// CopyAs streams srcName from src into dstName on dst.
func CopyAs(dst FileSystem, dstName string, src FileSystem, srcName string) (n int64, err error) {
	in, err := src.Open(srcName)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, in.Close())
	}()

	out, err := dst.Create(dstName)
	if err != nil {
		return 0, err
	}

	n, err = io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
