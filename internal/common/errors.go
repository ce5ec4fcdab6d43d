// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Feed errors.
	ErrTransport = errors.New("transport failure")
	ErrDecode    = errors.New("malformed response")

	// Conversation errors.
	ErrEmptyMessage = errors.New("message is empty")
	ErrReplyPending = errors.New("a reply is still pending")

	// Chart errors.
	ErrInvalidSpec      = errors.New("invalid chart spec")
	ErrUnsupportedChart = errors.New("unsupported chart type")
	ErrNotRenderable    = errors.New("rendering has no chart to draw")

	// Input errors.
	ErrInvalidGoal = errors.New("invalid goal")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
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

// UserMessage returns the user-facing text of err, or fallback when err carries none.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return fallback
}

// IsFeedFailure reports whether err came from the network boundary rather than the domain.
func IsFeedFailure(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrDecode)
}
