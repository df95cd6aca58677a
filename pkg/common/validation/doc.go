// Package validation provides argument validation helpers shared by
// taskman components. All helpers return a *errors.ValidationError that
// matches errors.ErrInvalidConfiguration under errors.Is.
package validation
