// Package apperr defines the error kinds shared by the scanner, the pool and the comparator.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrInvalidPath indicates a root or file is missing or has the wrong type.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPermissionDenied indicates a directory could not be listed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIO indicates a file could not be opened or read.
	ErrIO = errors.New("io error")

	// ErrPoolClosed indicates work was submitted after the pool began shutting down.
	ErrPoolClosed = errors.New("pool closed")
)

// PathError ties an error kind to the operation and path that produced it.
type PathError struct {
	Kind error  // One of the Err* kinds above
	Op   string // Operation that failed (open, read, stat, list)
	Path string // File or directory path
	Err  error  // Underlying error, may be nil
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s %s", e.Kind, e.Op, e.Path)
	}
	return fmt.Sprintf("%v: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *PathError) Is(target error) bool {
	return target == e.Kind
}

func InvalidPath(op, path string, cause error) error {
	return &PathError{Kind: ErrInvalidPath, Op: op, Path: path, Err: cause}
}

func IO(op, path string, cause error) error {
	return &PathError{Kind: ErrIO, Op: op, Path: path, Err: cause}
}

func Permission(op, path string, cause error) error {
	return &PathError{Kind: ErrPermissionDenied, Op: op, Path: path, Err: cause}
}
