package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations. Callers match them with errors.Is;
// every operation wraps one of these in an *Error carrying the op and path.
var (
	// ErrDuplicateName is returned when a name already exists among the
	// children of the destination folder.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidParent is returned when a parent path resolves to an entry.
	ErrInvalidParent = errors.New("parent is not a folder")

	// ErrInvalidInput is returned for empty names, empty launch paths and
	// unknown placements.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOperation is returned for structurally impossible requests:
	// touching the root, moving a node into itself or its own subtree.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotFound is returned when a data path does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData is returned when a persisted document cannot be decoded.
	ErrCorruptData = errors.New("corrupt catalog data")

	// ErrStorageFailure is returned when reading or writing the persisted
	// document fails. The in-memory catalog is unaffected.
	ErrStorageFailure = errors.New("storage failure")
)

// Error describes a failed catalog operation.
type Error struct {
	Op   string
	Path Path
	Err  error
}

func (e *Error) Error() string {
	if e.Path == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, p Path, kind error, format string, args ...any) error {
	err := kind
	if format != "" {
		err = fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
	}
	return &Error{Op: op, Path: p.Clone(), Err: err}
}
