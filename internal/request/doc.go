// Package request validates raw crawl requests and turns them into model.CrawlRequest.
//
// A raw request is the decoded form of the JSON or YAML input object:
//
//	{"keywords": ["python", "jwt"], "proxies": ["140.227.211.47:8080"], "type": "repositories"}
//
// Validation is a pure function of its input and never touches the network.
// It is exhaustive: every field and every proxy entry is checked, and all
// violations are returned together so a user can fix a request in one pass.
package request
