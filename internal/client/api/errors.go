package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable signals a transport-level failure: the backend could not
	// be reached at all (connection refused, DNS failure, timeout). Callers
	// use it to suggest starting the backend instead of showing a generic
	// request error.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized signals that the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound signals a 404 for a named resource.
	ErrNotFound = errors.New("not found")
)

// RequestError is a non-2xx response normalized into a single error kind.
// Detail carries the human-readable message from the backend's JSON error
// body when one was parseable, otherwise a generic fallback.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Detail)
}

// Is lets RequestError match the coarse sentinels via errors.Is.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrNotFound:
		return e.StatusCode == 404
	default:
		return false
	}
}
