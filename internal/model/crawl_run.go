package model

import "time"

// CrawlRun is a completed crawl as stored in the history database.
type CrawlRun struct {
	// ID is the unique identifier of the run.
	ID string `json:"id"`

	// Keywords are the search keywords of the request.
	Keywords []string `json:"keywords"`

	// Type is the requested result type.
	Type ResultType `json:"type"`

	// Proxy is the endpoint every request was routed through.
	Proxy ProxyEndpoint `json:"proxy"`

	// SearchURL is the search page that was fetched.
	SearchURL string `json:"search_url"`

	// StartedAt is when the crawl started.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the crawl took.
	Duration time.Duration `json:"duration"`

	// Records are the crawl results in output order.
	Records []ResultRecord `json:"records"`
}

// NewCrawlRun creates a CrawlRun for req.
// The ID is assigned when the run is saved.
func NewCrawlRun(req CrawlRequest, searchURL string, startedAt time.Time, records []ResultRecord) *CrawlRun {
	return &CrawlRun{
		Keywords:  req.Keywords(),
		Type:      req.Type(),
		Proxy:     req.Proxy(),
		SearchURL: searchURL,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Records:   records,
	}
}

// RepositoryCount returns the number of records carrying repository metadata.
func (r *CrawlRun) RepositoryCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Extra != nil {
			n++
		}
	}
	return n
}
