package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrStopped", ErrStopped, "manager is stopped"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrMissingDependency", ErrMissingDependency, "missing dependency"},
		{"ErrCyclicDependency", ErrCyclicDependency, "cyclic dependency"},
		{"ErrUnknownSchedule", ErrUnknownSchedule, "unknown schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(ErrStopped) {
		t.Error("ErrStopped should be terminal")
	}
	if !IsTerminal(fmt.Errorf("start: %w", ErrStopped)) {
		t.Error("wrapped ErrStopped should be terminal")
	}
	if IsTerminal(ErrMissingDependency) {
		t.Error("ErrMissingDependency should not be terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil should not be terminal")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "taskman",
				Field:  "workers",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "taskman: invalid workers=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "taskman",
				Field:  "work",
				Value:  nil,
				Reason: "cannot be nil",
				Hint:   "provide a valid work",
			},
			want: "taskman: invalid work=<nil> (cannot be nil) - provide a valid work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("taskman", "name", "", "cannot be empty").
		WithHint("provide a non-empty name")

	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Error("validation errors should match ErrInvalidConfiguration")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find ValidationError")
	}
	if ve.Field != "name" {
		t.Errorf("got field %q, want %q", ve.Field, "name")
	}
}
