package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/hubcrawl/internal/extract"
	"github.com/nao1215/hubcrawl/internal/fetch"
	"github.com/nao1215/hubcrawl/internal/model"
	"github.com/nao1215/hubcrawl/internal/proxy"
	"github.com/nao1215/hubcrawl/internal/request"
)

// DefaultSiteRoot is the site crawled when no root is configured.
const DefaultSiteRoot = "https://github.com"

// ClientFactory builds the HTTP client that routes requests through endpoint.
type ClientFactory func(endpoint model.ProxyEndpoint) (*http.Client, error)

// Crawler runs search crawls. A Crawler holds no per-crawl state and may be
// reused for several crawls.
type Crawler struct {
	// logger for structured logging.
	logger *slog.Logger

	// siteRoot is prepended to the search path and used to resolve result links.
	siteRoot *url.URL

	// search extracts result links from the search page.
	search extract.SearchExtractor

	// detail extracts metadata from repository pages.
	detail extract.DetailExtractor

	// newClient builds the proxied HTTP client for a crawl.
	newClient ClientFactory

	// selector picks the proxy during validation.
	selector proxy.Selector

	// observer receives state transitions. May be nil.
	observer Observer

	// fetchOpts are passed to every Fetcher.
	fetchOpts []fetch.Option
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithSiteRoot sets the site root. Nil keeps DefaultSiteRoot.
func WithSiteRoot(root *url.URL) Option {
	return func(c *Crawler) {
		if root != nil {
			c.siteRoot = root
		}
	}
}

// WithSearchExtractor replaces the search page extractor.
func WithSearchExtractor(e extract.SearchExtractor) Option {
	return func(c *Crawler) {
		c.search = e
	}
}

// WithDetailExtractor replaces the repository page extractor.
func WithDetailExtractor(e extract.DetailExtractor) Option {
	return func(c *Crawler) {
		c.detail = e
	}
}

// WithClientFactory sets how the proxied HTTP client is built.
func WithClientFactory(f ClientFactory) Option {
	return func(c *Crawler) {
		c.newClient = f
	}
}

// WithSelector sets the proxy selector used by Run.
func WithSelector(s proxy.Selector) Option {
	return func(c *Crawler) {
		c.selector = s
	}
}

// WithObserver sets a callback receiving every state transition.
func WithObserver(o Observer) Option {
	return func(c *Crawler) {
		c.observer = o
	}
}

// WithFetchOptions sets options passed to the page fetcher.
func WithFetchOptions(opts ...fetch.Option) Option {
	return func(c *Crawler) {
		c.fetchOpts = append(c.fetchOpts, opts...)
	}
}

// New creates a Crawler for github.com using plain HTTP proxies.
func New(opts ...Option) *Crawler {
	root, _ := url.Parse(DefaultSiteRoot) //nolint:errcheck // constant URL
	c := &Crawler{
		logger:   slog.Default(),
		siteRoot: root,
		detail:   extract.GitHubRepository{},
		newClient: func(endpoint model.ProxyEndpoint) (*http.Client, error) {
			return proxy.NewHTTPClient(endpoint)
		},
		selector: proxy.NewRandomSelector(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.search == nil {
		c.search = extract.NewGitHubSearch(c.siteRoot)
	}
	return c
}

// SearchURL returns the search page URL for req:
//
//	<root>/search?q=<kw1>+<kw2>+...&type=<type>
//
// Keywords are NFC-normalized and query-escaped before joining, so the "+"
// separators are the only unescaped ones: "c++" is sent as "c%2B%2B".
func (c *Crawler) SearchURL(req model.CrawlRequest) string {
	keywords := req.Keywords()
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		escaped = append(escaped, url.QueryEscape(norm.NFC.String(kw)))
	}

	u := c.siteRoot.JoinPath("search")
	u.RawQuery = "q=" + strings.Join(escaped, "+") + "&type=" + req.Type().String()
	return u.String()
}

// Run validates raw, selects a proxy with the configured Selector and crawls.
// The returned run carries the validated request, the search URL and the
// records; its ID is left empty for the history store to assign.
// Validation failures are returned as a *Failure in StateValidating, and no
// request is sent.
func (c *Crawler) Run(ctx context.Context, raw map[string]any) (*model.CrawlRun, error) {
	c.enter(StateValidating)
	req, err := request.New(raw, c.selector)
	if err != nil {
		return nil, c.fail(StateValidating, err)
	}

	startedAt := time.Now()
	records, err := c.Crawl(ctx, req)
	if err != nil {
		return nil, err
	}
	return model.NewCrawlRun(req, c.SearchURL(req), startedAt, records), nil
}

// Crawl fetches the search page for req and, for repository searches, every
// result page. Records are returned in search result order. An empty search
// result is a success with zero records.
func (c *Crawler) Crawl(ctx context.Context, req model.CrawlRequest) ([]model.ResultRecord, error) {
	c.enter(StateSearching)

	client, err := c.newClient(req.Proxy())
	if err != nil {
		return nil, c.fail(StateSearching, fmt.Errorf("create client for proxy %s: %w", req.Proxy(), err))
	}
	fetcher := fetch.New(client, append([]fetch.Option{fetch.WithLogger(c.logger)}, c.fetchOpts...)...)

	searchURL := c.SearchURL(req)
	c.logger.Info("searching", "url", searchURL, "proxy", req.Proxy().String(), "type", req.Type().String())

	doc, err := fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, c.fail(StateSearching, err)
	}
	links := c.search.SearchLinks(doc)
	c.logger.Info("search results extracted", "count", len(links))

	records := make([]model.ResultRecord, 0, len(links))
	if !req.Type().Enriched() {
		for _, link := range links {
			records = append(records, model.ResultRecord{URL: link})
		}
		c.enter(StateDone)
		return records, nil
	}

	c.enter(StateEnrichingRepositories)
	for _, link := range links {
		extra, err := c.enrich(ctx, fetcher, link)
		if err != nil {
			return nil, c.fail(StateEnrichingRepositories, err)
		}
		records = append(records, model.ResultRecord{URL: link, Extra: extra})
	}

	c.enter(StateDone)
	return records, nil
}

// enrich fetches a repository page and reads its metadata.
func (c *Crawler) enrich(ctx context.Context, fetcher *fetch.Fetcher, link string) (*model.RepositoryExtra, error) {
	doc, err := fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	owner, err := c.detail.Owner(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", link, err)
	}
	stats := c.detail.LanguageStats(doc)
	c.logger.Debug("repository enriched", "url", link, "owner", owner, "languages", len(stats))

	return &model.RepositoryExtra{Owner: owner, LanguageStats: stats}, nil
}

func (c *Crawler) enter(s State) {
	c.logger.Debug("crawl state", "state", s.String())
	if c.observer != nil {
		c.observer(s)
	}
}

func (c *Crawler) fail(s State, err error) error {
	c.enter(StateFailed)
	return &Failure{State: s, Err: err}
}
