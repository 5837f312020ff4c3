// Package report writes crawl results.
//
// This package contains writers for different output formats:
//   - JSONWriter: the record list as JSON, the format consumed by other tools
//   - MarkdownWriter: a readable summary with a record table and language chart
//   - SimpleWriter: plain text for terminal display
//
// Design decision: We separate report writing from the record types (which
// are in the model package) so that new output formats can be added
// without touching the crawler.
//
// WriteFile implements the persistence rule for crawl output: a non-empty
// result is written, an empty one is not.
package report
