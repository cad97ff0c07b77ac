package huntgen

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common generation failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates caller-supplied input was rejected before
	// any model call was attempted, such as an empty threat description.
	// Caller-fixable; never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationFailed indicates the completion service failed after the
	// internal retry was exhausted. The underlying cause is wrapped.
	ErrGenerationFailed = errors.New("generation failed")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindUnavailable represents errors reaching the completion service.
	KindUnavailable = "unavailable"

	// KindTimeout represents errors related to operation timeouts.
	KindTimeout = "timeout"

	// KindGeneration represents terminal generation failures.
	KindGeneration = "generation"

	// KindStorage represents errors from the query library store.
	KindStorage = "storage"

	// KindInternal represents internal errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Generator.Generate").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindGeneration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include the dialect, attempt counts, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("huntgen: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("huntgen: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("huntgen: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or on another Error's Op and Kind.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewUnavailableError creates a new Error with KindUnavailable.
func NewUnavailableError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindUnavailable,
		Err:  err,
	}
}

// NewTimeoutError creates a new Error with KindTimeout.
func NewTimeoutError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindTimeout,
		Err:  err,
	}
}

// NewGenerationError creates a new Error with KindGeneration.
func NewGenerationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindGeneration,
		Err:  err,
	}
}

// NewStorageError creates a new Error with KindStorage.
func NewStorageError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindStorage,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "store", "connection"). If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
