package history

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Latest when no record exists for a source.
var ErrNotFound = errors.New("history record not found")

// errMissingID rejects records stored without an analysis id.
var errMissingID = errors.New("record must have an id")

// StorageError wraps a backend failure with the backend and step that failed.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError creates a StorageError.
func NewStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// QueryError rejects a query parameter before it reaches a backend.
type QueryError struct {
	Field  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid history query: %s %s", e.Field, e.Reason)
}

func queryError(field, format string, args ...any) *QueryError {
	return &QueryError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
