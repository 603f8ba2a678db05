package shared

import (
	"errors"
	"fmt"
)

// Error codes understood by the HTTP layer
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so a specific
// NewNotFound(...) error matches ErrNotFound via errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidArgument creates an INVALID_ARGUMENT error with a formatted message
func NewInvalidArgument(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// NewNotFound creates a NOT_FOUND error with a formatted message
func NewNotFound(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// NewConflict creates a CONFLICT error with a formatted message
func NewConflict(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict        = NewDomainError(CodeConflict, "Resource already exists")
	ErrInvalidArgument = NewDomainError(CodeInvalidArgument, "Invalid argument provided")
)

// AsDomainError extracts a *DomainError from an error chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
