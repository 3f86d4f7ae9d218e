package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrAgentNotFound  = fmt.Errorf("%w: agent", ErrNotFound)
	ErrSourceNotFound = fmt.Errorf("%w: data source", ErrNotFound)
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrInvalidDataSource = errors.New("invalid data source: no data or columns found")
	ErrInvalidAgent      = errors.New("invalid agent configuration")
	ErrUnsupportedFormat = errors.New("unsupported data source format")

	// Execution errors
	ErrExecutionFailed = errors.New("agent execution failed")
	ErrAgentBusy       = errors.New("agent is already running")
)

// NewNotFoundError creates a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", ErrInvalidAgent, field, reason)
}

// IsNotFoundError checks whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks whether err is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDataSource) ||
		errors.Is(err, ErrInvalidAgent) ||
		errors.Is(err, ErrUnsupportedFormat)
}
