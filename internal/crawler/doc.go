// Package crawler runs a single search crawl.
//
// # Flow
//
// A crawl moves through a fixed sequence of states:
//
//	Validating -> Searching -> EnrichingRepositories -> Done
//	                        \-> Done (issues, wikis)
//
// Any error moves it to Failed. Validation happens before any network I/O.
// The search page is fetched once, its result links are extracted, and for
// repository searches each link's page is fetched to read the owner and the
// language statistics. Every request goes through the one proxy selected
// when the request was validated.
//
// Design decision: The crawl is strictly sequential and aborts on the first
// failure because:
//  1. A single proxy is used and firing parallel requests through it invites throttling
//  2. Callers get either the complete result or an error, never a partial list
//  3. The failing state is reported so callers can tell input problems from network problems
//
// # Usage
//
//	c := crawler.New(crawler.WithLogger(logger))
//	run, err := c.Run(ctx, raw)
//	// run.Records holds the results, run.Proxy the endpoint used
//
// Extraction is delegated to the extract package through interfaces, so a
// different markup layout only needs new extractors.
package crawler
