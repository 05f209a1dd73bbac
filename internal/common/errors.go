// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Dataset errors.
	ErrSchema            = errors.New("missing required columns")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDataFileNotFound  = errors.New("dataset file not found")
	ErrEmptyDataset      = errors.New("no examples left after filtering")

	// Model errors.
	ErrModelNotFound    = errors.New("model not found")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrNotFitted        = errors.New("pipeline is not fitted")

	// Prediction errors.
	ErrEmptyInput = errors.New("no input text supplied")

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

// UserMessage returns the user-facing message of err if it carries one,
// otherwise err.Error().
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}
	return err.Error()
}
