package proxy

import "errors"

var (
	// ErrUnsupportedScheme is returned when the proxy scheme is not http, https or socks5.
	ErrUnsupportedScheme = errors.New("unsupported proxy scheme: expected http, https or socks5")

	// ErrNoEndpoint is returned when a client is requested for the zero ProxyEndpoint.
	ErrNoEndpoint = errors.New("no proxy endpoint selected")
)
