package proxy

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	xproxy "golang.org/x/net/proxy"

	"github.com/nao1215/hubcrawl/internal/model"
)

// Scheme is the protocol spoken to the upstream proxy.
type Scheme string

const (
	// SchemeHTTP talks plain HTTP to a forward proxy; HTTPS targets are tunneled with CONNECT.
	SchemeHTTP Scheme = "http"
	// SchemeHTTPS talks TLS to the forward proxy itself.
	SchemeHTTPS Scheme = "https"
	// SchemeSOCKS5 dials targets through a SOCKS5 proxy.
	SchemeSOCKS5 Scheme = "socks5"
)

// ParseScheme validates s as a proxy scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeHTTP, SchemeHTTPS, SchemeSOCKS5:
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, s)
	}
}

// DefaultUserAgent is sent when no User-Agent is configured.
// The search pages only render the expected markup for browser-like agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// clientConfig holds the settings applied by ClientOption.
type clientConfig struct {
	scheme    Scheme
	timeout   time.Duration
	userAgent string
	headers   map[string]string
}

// ClientOption configures NewHTTPClient.
type ClientOption func(*clientConfig)

// WithScheme sets the proxy scheme. Default is SchemeHTTP.
func WithScheme(s Scheme) ClientOption {
	return func(c *clientConfig) {
		c.scheme = s
	}
}

// WithTimeout sets the overall timeout of each request. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithHeaders sets extra headers added to every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *clientConfig) {
		c.headers = headers
	}
}

// NewHTTPClient creates an HTTP client that routes every request through endpoint.
//
// Design decisions:
//   - The transport's Proxy func is fixed to the endpoint, so HTTP_PROXY and
//     friends from the environment are ignored
//   - TLS verification stays enabled; the targets are public sites
//   - Headers are injected by a RoundTripper so redirects carry them too
func NewHTTPClient(endpoint model.ProxyEndpoint, opts ...ClientOption) (*http.Client, error) {
	if endpoint.IsZero() {
		return nil, ErrNoEndpoint
	}

	cfg := clientConfig{
		scheme:    SchemeHTTP,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
	}

	switch cfg.scheme {
	case SchemeHTTP, SchemeHTTPS:
		proxyURL := &url.URL{Scheme: string(cfg.scheme), Host: endpoint.String()}
		transport.Proxy = http.ProxyURL(proxyURL)
	case SchemeSOCKS5:
		dialer, err := xproxy.SOCKS5("tcp", endpoint.String(), nil, xproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.DialContext = contextDialer(dialer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, cfg.scheme)
	}

	return &http.Client{
		Transport: &headerInjectingTransport{
			base:      transport,
			userAgent: cfg.userAgent,
			headers:   cfg.headers,
		},
		Timeout: cfg.timeout,
		// Limit redirects to prevent loops
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// contextDialer adapts a proxy.Dialer to http.Transport.DialContext.
// The SOCKS5 dialer from x/net implements ContextDialer; the fallback keeps
// working for dialers that do not.
func contextDialer(d xproxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(xproxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

// headerInjectingTransport wraps an http.RoundTripper to add default headers.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clone := req.Clone(req.Context())

	if clone.Header.Get("User-Agent") == "" && t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	if clone.Header.Get("Accept-Language") == "" {
		clone.Header.Set("Accept-Language", "en-US,en;q=0.5")
	}
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
