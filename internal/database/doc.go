// Package database provides SQLite-based storage for crawl history.
//
// This package implements the CrawlDB, which stores every successful crawl
// run: the request keywords and type, the proxy used, the search URL and
// the resulting records.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
package database
