// Package config provides configuration structures and utilities for hubcrawl.
// It defines where the crawl request comes from, how requests are sent
// through the proxy, and where results and history are stored.
package config
