package model

import "slices"

// CrawlRequest is a validated crawl request.
// It is constructed once by the request package and never mutated: the
// accessors hand out copies of the underlying slices.
type CrawlRequest struct {
	keywords   []string
	proxies    []ProxyEndpoint
	resultType ResultType
	proxy      ProxyEndpoint
}

// NewCrawlRequest assembles a CrawlRequest from already validated parts.
// The chosen proxy must be one of proxies; callers obtain it from a proxy selector.
func NewCrawlRequest(keywords []string, proxies []ProxyEndpoint, resultType ResultType, chosen ProxyEndpoint) CrawlRequest {
	return CrawlRequest{
		keywords:   slices.Clone(keywords),
		proxies:    slices.Clone(proxies),
		resultType: resultType,
		proxy:      chosen,
	}
}

// Keywords returns the search keywords in request order.
func (r CrawlRequest) Keywords() []string {
	return slices.Clone(r.keywords)
}

// Proxies returns the validated proxy pool.
func (r CrawlRequest) Proxies() []ProxyEndpoint {
	return slices.Clone(r.proxies)
}

// Type returns the requested result type.
func (r CrawlRequest) Type() ResultType {
	return r.resultType
}

// Proxy returns the endpoint selected for every fetch of this crawl.
func (r CrawlRequest) Proxy() ProxyEndpoint {
	return r.proxy
}
