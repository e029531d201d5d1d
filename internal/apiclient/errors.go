package apiclient

import (
	"errors"
	"net/http"
)

// Kind classifies a failed request.
type Kind string

const (
	// KindConnectivity means the backend could not be reached (StatusCode 0).
	KindConnectivity Kind = "connectivity"
	// KindAuthExpired means the backend rejected the credentials (401).
	KindAuthExpired Kind = "authExpired"
	// KindGeneric covers every other failure; Message is user-facing.
	KindGeneric Kind = "generic"
)

const defaultErrorMessage = "Request failed."

// Error is the single error type returned for failed backend calls.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func kindForStatus(status int) Kind {
	switch {
	case status == 0:
		return KindConnectivity
	case status == http.StatusUnauthorized:
		return KindAuthExpired
	default:
		return KindGeneric
	}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Kind
	}
	return ""
}

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool {
	return KindOf(err) == KindConnectivity
}

// IsAuthExpired reports whether err means the session is no longer valid.
func IsAuthExpired(err error) bool {
	return KindOf(err) == KindAuthExpired
}

// Message returns the user-facing message for err, or fallback when err did
// not come from the backend.
func Message(err error, fallback string) string {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Message
	}
	return fallback
}
