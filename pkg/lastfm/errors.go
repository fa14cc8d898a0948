package lastfm

import (
	"errors"
	"fmt"
)

// UpstreamError is returned when Last.fm answers with a non-success
// HTTP status.
//
// The body is still parsed on failure, so Code and Message carry the
// Last.fm error code and text when the response included them.
type UpstreamError struct {
	StatusCode int    // HTTP status code
	Code       int    // Last.fm error code (0 if absent)
	Message    string // Error message from Last.fm
}

// Error returns the error message in "<status> - <message>" form.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Message)
}

// Is reports whether target is an *UpstreamError with the same Last.fm
// code, or the same status when neither carries a code.
//
// This allows errors.Is() to match against sentinel values such as
// &UpstreamError{Code: ErrCodeInvalidAPIKey}.
func (e *UpstreamError) Is(target error) bool {
	t, ok := target.(*UpstreamError)
	if !ok {
		return false
	}
	if t.Code != 0 {
		return e.Code == t.Code
	}
	return t.StatusCode != 0 && e.StatusCode == t.StatusCode
}

// Temporary returns true if the failure is on the Last.fm side and a
// later request may succeed.
//
// The following Last.fm error codes are considered temporary:
//   - 11: Service Offline - temporarily unavailable
//   - 16: Service Temporarily Unavailable
//
// Any 5xx status is also considered temporary.
func (e *UpstreamError) Temporary() bool {
	switch e.Code {
	case ErrCodeServiceOffline, ErrCodeTempUnavailable:
		return true
	}
	return e.StatusCode >= 500
}

// NetworkError is returned when the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("lastfm: request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the response body is not valid JSON or
// does not have the expected shape.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lastfm: invalid response (status %d): %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Common Last.fm error codes.
const (
	ErrCodeInvalidService       = 2
	ErrCodeInvalidMethod        = 3
	ErrCodeAuthenticationFailed = 4
	ErrCodeInvalidFormat        = 5
	ErrCodeInvalidParameters    = 6
	ErrCodeInvalidResourceSpec  = 7
	ErrCodeOperationFailed      = 8
	ErrCodeInvalidSessionKey    = 9
	ErrCodeInvalidAPIKey        = 10
	ErrCodeServiceOffline       = 11
	ErrCodeSubscribersOnly      = 12
	ErrCodeInvalidSignature     = 13
	ErrCodeUnauthorizedToken    = 14
	ErrCodeExpiredToken         = 15
	ErrCodeTempUnavailable      = 16
	ErrCodeRateLimitExceeded    = 29
)

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("lastfm: invalid configuration")

	// ErrMissingUser is returned when a user method is called without a username.
	ErrMissingUser = errors.New("lastfm: user is required")
)
