package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodySize limits how much of a response body is parsed.
// Search and repository pages are well below this size.
const DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

// Fetcher performs GET requests and parses the responses as HTML.
// It is stateless apart from the client it was configured with.
type Fetcher struct {
	// client is the HTTP client configured for the selected proxy.
	client *http.Client

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBodySize sets the maximum response body size.
// Values <= 0 keep the default.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher using client.
// The client should be pre-configured with the crawl's proxy.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs pageURL and returns the parsed document.
// Bodies in other encodings are converted to UTF-8 based on the Content-Type
// header and <meta> tags before parsing.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	f.logger.Debug("fetching page", "url", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096) //nolint:errcheck // Best effort
		return nil, &Error{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	doc, err := html.Parse(body)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	f.logger.Debug("page fetched", "url", pageURL, "status", resp.StatusCode)
	return doc, nil
}
