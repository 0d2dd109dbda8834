package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the playback engine's failure taxonomy. Every
// one of these degrades locally (fallback asset, forced advance, empty
// timeline, or no-op) and is never surfaced to the presentation layer.
var (
	ErrAssetResolution  = errors.New("asset resolution failure")
	ErrMediaLoadTimeout = errors.New("media load timeout")
	ErrSourceFetch      = errors.New("story source fetch failure")
	ErrOutOfBounds      = errors.New("out of bounds navigation")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error is the wrapping error type carried across package boundaries.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message.
func New(message string) error {
	return &Error{Message: message}
}

// Wrap wraps an error with additional message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message.
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSourceFetch returns true if the error is a story source fetch failure.
func IsSourceFetch(err error) bool {
	return errors.Is(err, ErrSourceFetch)
}
