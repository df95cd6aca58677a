// Package errors defines the error types shared across taskman components.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrStopped indicates that an operation was attempted on a manager
	// that has already been stopped
	ErrStopped = errors.New("manager is stopped")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingDependency indicates a task names a prerequisite that is
	// neither pending nor completed
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCyclicDependency indicates the pending tasks form a dependency cycle
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrUnknownSchedule indicates a named cron schedule does not exist
	ErrUnknownSchedule = errors.New("unknown schedule")
)

// IsTerminal returns true if the error indicates a condition that no
// retry against the same manager instance can resolve
func IsTerminal(err error) bool {
	return errors.Is(err, ErrStopped) || errors.Is(err, ErrCyclicDependency)
}

// ValidationError describes a rejected argument or configuration field.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrInvalidConfiguration) hold for every
// validation error.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
