package types

import "fmt"

// ErrorCode represents a GoLogic error code.
type ErrorCode string

const (
	// ErrUnrecognizedOperation is raised when an operator name is not found
	// in any category. This is the only error kind that evaluation surfaces
	// to callers; every other edge case degrades to a sentinel value.
	ErrUnrecognizedOperation ErrorCode = "L1001"
	// ErrProtectedOperation is returned when registering an operator name
	// reserved by the logical, scoped or data-access categories.
	ErrProtectedOperation ErrorCode = "L1002"
	// ErrUnknownOperation is returned when removing an operator that was
	// never registered.
	ErrUnknownOperation ErrorCode = "L1003"
	// ErrNotInvocable is raised when a dotted operator path resolves to a
	// value that cannot be invoked.
	ErrNotInvocable ErrorCode = "L1004"
)

// Error represents a structured GoLogic error.
type Error struct {
	Code      ErrorCode
	Message   string
	Operation string // offending operator name or dotted path prefix
	Err       error
}

// NewError creates a new GoLogic error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewUnrecognizedOperation creates the error raised for an unknown operator.
// name is the operator name or, for dotted operators, the path prefix whose
// resolution failed.
func NewUnrecognizedOperation(name string) *Error {
	return &Error{
		Code:      ErrUnrecognizedOperation,
		Message:   fmt.Sprintf("unrecognized operation %q", name),
		Operation: name,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code, so callers can use errors.Is with a bare
// &Error{Code: ...} target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithOperation records the operator name on the error.
func (e *Error) WithOperation(name string) *Error {
	e.Operation = name
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}
