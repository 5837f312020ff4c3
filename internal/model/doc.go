// Package model defines the core data structures used throughout hubcrawl.
//
// This package contains the following main types:
//   - ResultType: The kind of search result being crawled (repositories, issues, wikis)
//   - ProxyEndpoint: A validated "ip:port" proxy address
//   - CrawlRequest: A validated, immutable crawl request
//   - ResultRecord: One output entry, optionally enriched with repository metadata
//   - CrawlRun: A stored crawl with its request and records
//
// Design decision: We keep the value objects (ProxyEndpoint, ResultType) in
// this package together with their parsing rules, so every package that holds
// one can rely on it having been validated at construction time.
//
// The records are designed to be serializable to JSON for report output and
// database storage.
package model
