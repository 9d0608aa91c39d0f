package rexfs

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound is returned when opening a name that does not exist.
	//
	// It aliases os.ErrNotExist so host errors from the local backend match too.
	ErrNotFound = os.ErrNotExist

	// ErrExist is returned by backends with exclusive create semantics
	// when the name is already taken.
	ErrExist = os.ErrExist

	// ErrInvariant marks a broken internal invariant. It indicates a bug in the
	// caller or harness, not an environmental condition, and is never retried.
	ErrInvariant = errors.New("invariant violated")

	// ErrReadOnly is returned when writing to a handle that only supports reads.
	ErrReadOnly = errors.New("file is read-only")

	// ErrWriteOnly is returned when reading from a handle that only supports writes.
	ErrWriteOnly = errors.New("file is write-only")
)

// InvariantError describes an invariant violation on a named file.
//
// errors.Is(err, ErrInvariant) reports true for every InvariantError.
type InvariantError struct {
	Op     string
	Path   string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s %s: %v: %s", e.Op, e.Path, ErrInvariant, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// IsNotFound reports whether err indicates a missing file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsExist reports whether err indicates an occupied name.
func IsExist(err error) bool {
	return errors.Is(err, ErrExist)
}
