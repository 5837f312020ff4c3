// Package fetch retrieves pages and parses them into HTML document trees.
//
// A Fetcher issues exactly one GET per call through the HTTP client it was
// built with. There is no retry: a transport error or a non-2xx status is
// returned as *Error and the caller decides what to do with it (the crawler
// aborts).
package fetch
