package lastfm

import (
	"fmt"
	"net/http"
)

// Error represents a Last.fm API error.
//
// The Error type provides structured error information including
// the Last.fm error code and message.
type Error struct {
	Code    int    // Last.fm error code
	Message string // Error message from Last.fm
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d: %s", e.Code, e.Message)
}

// Is checks if the target error is a Last.fm error.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Error codes user.getRecentTracks can return.
const (
	ErrCodeInvalidParameters = 6 // includes unknown users
	ErrCodeOperationFailed   = 8
	ErrCodeInvalidAPIKey     = 10
	ErrCodeServiceOffline    = 11
	ErrCodeTempUnavailable   = 16
	ErrCodeLoginRequired     = 17 // private listening history
	ErrCodeSuspendedAPIKey   = 26
	ErrCodeRateLimitExceeded = 29
)

// StatusError is returned when the API answers with a non-2xx HTTP status.
//
// Err holds the decoded Last.fm error body, if the response carried one.
type StatusError struct {
	StatusCode int
	Status     string
	Err        *Error
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		return fmt.Sprintf("lastfm: unexpected status %s: %s", status, e.Err.Message)
	}
	return fmt.Sprintf("lastfm: unexpected status %s", status)
}

// Unwrap returns the Last.fm error carried by the response, if any.
func (e *StatusError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// ParseError is returned when a response body does not match the
// expected schema.
type ParseError struct {
	Method string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lastfm: failed to parse %s response: %v", e.Method, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NetworkError is returned when the request never produced a response.
//
// It carries only the transport cause, never the request URL, which
// holds the API key.
type NetworkError struct {
	Method string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("lastfm: %s request failed: %v", e.Method, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Predefined errors for common cases.
var (
	// ErrEmptyUser is returned when a user method is called without a username.
	ErrEmptyUser = fmt.Errorf("lastfm: username is required")
)
