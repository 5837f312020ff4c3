package fetch

import (
	"errors"
	"fmt"
)

// ErrFetch matches every error returned by Fetcher.Fetch.
var ErrFetch = errors.New("fetch failed")

// Error describes a failed fetch.
type Error struct {
	// URL is the page that was requested.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	default:
		return "fetch " + e.URL + ": failed"
	}
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrFetch
}
