package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRequest is returned when neither a request file nor request flags are given.
	ErrNoRequest = errors.New("no crawl request: use --input or --keyword, --proxy and --type")

	// ErrConflictingRequestSources is returned when a request file is combined
	// with request flags. The request must come from exactly one source.
	ErrConflictingRequestSources = errors.New("conflicting request sources: --input cannot be combined with --keyword, --proxy or --type")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidProxyScheme is returned for a proxy scheme other than http, https or socks5.
	ErrInvalidProxyScheme = errors.New("invalid proxy scheme")

	// ErrInvalidSiteRoot is returned when the site root is not an absolute http(s) URL.
	ErrInvalidSiteRoot = errors.New("invalid site root: must be an absolute http or https URL")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
