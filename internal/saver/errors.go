package saver

import "fmt"

// ErrorKind classifies save failures. Every failure is converted into a
// structured Result at the operation boundary; kinds let callers and
// tests distinguish them without parsing messages.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindSizeLimitExceeded     ErrorKind = "size_limit_exceeded"
	KindPathTraversalRejected ErrorKind = "path_traversal_rejected"
	KindWriteFailed           ErrorKind = "write_failed"
)

// SaveError carries a failure kind alongside a caller-facing message and
// the underlying cause, if any.
type SaveError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *SaveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *SaveError) Unwrap() error {
	return e.Err
}

// NewError creates a SaveError with a formatted message
func NewError(kind ErrorKind, format string, args ...any) *SaveError {
	return &SaveError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapError creates a SaveError around an underlying cause
func wrapError(kind ErrorKind, err error, format string, args ...any) *SaveError {
	return &SaveError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
