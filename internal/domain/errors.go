package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation failed")
	ErrConfiguration = errors.New("configuration missing")
)

// ValidationError is a user-correctable input defect. The message is meant to be
// shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	if len(args) == 0 {
		return &ValidationError{Message: format}
	}
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports missing company-level master data.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	if len(args) == 0 {
		return &ConfigurationError{Message: format}
	}
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
