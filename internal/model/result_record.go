package model

// ResultRecord is one entry of the crawl output.
//
// For repositories Extra is populated; for issues and wikis it is nil and
// omitted from JSON, so the two output shapes are
//
//	{"url": "..."}
//	{"url": "...", "extra": {"owner": "...", "language_stats": {...}}}
type ResultRecord struct {
	// URL is the absolute URL of the search result.
	URL string `json:"url"`

	// Extra holds repository metadata. Nil for non-repository results.
	Extra *RepositoryExtra `json:"extra,omitempty"`
}

// RepositoryExtra is the metadata extracted from a repository page.
type RepositoryExtra struct {
	// Owner is the trimmed author name shown on the repository page.
	Owner string `json:"owner"`

	// LanguageStats maps a language name to its percentage string (e.g. "85.2%").
	LanguageStats map[string]string `json:"language_stats"`
}
