package request

import (
	"errors"
	"strings"

	"github.com/nao1215/hubcrawl/internal/model"
)

// Validation errors.
// Use errors.Is on the error returned by Validate to test for a specific kind.
// The proxy and type errors are shared with the model package, which owns the
// parsing rules for those value objects.
var (
	// ErrSchema is returned when a required key is missing or has the wrong type.
	ErrSchema = errors.New("schema error")

	// ErrEmptyKeywords is returned when the keyword list is empty.
	ErrEmptyKeywords = errors.New("there must be at least one keyword")

	// ErrEmptyProxies is returned when the proxy list is empty.
	ErrEmptyProxies = errors.New("there must be at least one proxy")

	// ErrMalformedProxy is returned when a proxy is not "ip:port".
	ErrMalformedProxy = model.ErrMalformedProxy

	// ErrInvalidAddress is returned when a proxy address is not IPv4 or IPv6.
	ErrInvalidAddress = model.ErrInvalidAddress

	// ErrInvalidPort is returned when a proxy port is not numeric or out of range.
	ErrInvalidPort = model.ErrInvalidPort

	// ErrInvalidType is returned when the result type is not supported.
	ErrInvalidType = model.ErrInvalidType
)

// ValidationError collects every violation found in one raw request.
type ValidationError struct {
	// Problems lists the individual violations in the order they were found.
	Problems []error
}

// Error implements error.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid crawl request: " + strings.Join(msgs, "; ")
}

// Unwrap returns the individual violations so errors.Is and errors.As see each of them.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}
