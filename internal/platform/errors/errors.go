// Package errors provides error helpers shared by the platform packages.
// It extends the standard errors package with context wrapping and the
// transport-level sentinels returned by the HTTP client.
package errors

import (
	"errors"
	"fmt"
)

// Transport sentinels
var (
	// ErrRateLimit indicates the remote side throttled the request (HTTP 429).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrNotFound indicates the remote resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates rejected credentials (HTTP 401/403).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a temporary upstream failure (HTTP 502/503/504).
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response")
)

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps err with a context message. Wrap(nil, ...) returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps err with a formatted context message. Wrapf(nil, ...) returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf is fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsRateLimit reports whether err is a rate limit error.
func IsRateLimit(err error) bool {
	return Is(err, ErrRateLimit)
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	return Is(err, ErrUnauthorized)
}
