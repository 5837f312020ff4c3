// Package proxy provides proxy selection and proxied HTTP clients for hubcrawl.
//
// A crawl picks exactly one endpoint from the request's proxy pool and routes
// every request of that crawl through it. There is no rotation and no
// failover: if the chosen proxy is unreachable, the crawl fails.
//
// Two kinds of upstream proxies are supported:
//   - HTTP forward proxies (scheme "http" or "https"), the common case for
//     public proxy lists
//   - SOCKS5 proxies (scheme "socks5"), dialed through golang.org/x/net/proxy
//
// The package is designed to be used with dependency injection: build a client
// with NewHTTPClient and hand it to the fetcher instead of relying on
// environment proxy variables.
package proxy
