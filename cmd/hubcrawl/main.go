// Package main provides the entry point for the hubcrawl CLI.
//
// hubcrawl searches GitHub through a user-supplied proxy and writes the
// result links as JSON. Repository results are enriched with the owner and
// the language statistics of each repository.
//
// Usage:
//
//	hubcrawl crawl -k openstack -k nova -p 194.126.37.94:8080 -t repositories
//	hubcrawl crawl -i request.yaml -o result.json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
