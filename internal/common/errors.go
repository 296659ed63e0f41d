// Package common provides shared errors and logging helpers used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Range errors.
	ErrInvalidRange     = errors.New("invalid column range")
	ErrMultiColumnRange = errors.New("column range must cover a single column")

	// Input errors.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyInput        = errors.New("input contains no data")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsCallerError reports whether err is a contract violation by the caller
// (a bad range) rather than a problem with the data itself.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrMultiColumnRange)
}
