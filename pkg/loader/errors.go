package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLarge is returned when an export exceeds the configured size limit.
	ErrTooLarge = errors.New("document exceeds maximum size")

	// ErrUnsupportedFormat is returned for extensions with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidEncoding is returned for exports that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("document is not valid UTF-8")
)

// Load failure reasons, used as metric labels.
const (
	ReasonNotFound    = "not_found"
	ReasonPermission  = "permission"
	ReasonTooLarge    = "too_large"
	ReasonUnsupported = "unsupported_format"
	ReasonEncoding    = "encoding"
	ReasonDecode      = "decode"
	ReasonIO          = "io"
)

// LoadError describes a failure to read or decode an export.
type LoadError struct {
	// Path is the file that failed to load. Empty for reader input.
	Path string

	// Op is the failed step ("stat", "read", "decode", "walk").
	Op string

	// Reason classifies the failure; see the Reason constants.
	Reason string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s chat export: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("failed to %s chat export %q: %v", e.Op, e.Path, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ReasonOf returns the LoadError reason in err's chain, or ReasonIO.
func ReasonOf(err error) string {
	var le *LoadError
	if errors.As(err, &le) && le.Reason != "" {
		return le.Reason
	}
	return ReasonIO
}
