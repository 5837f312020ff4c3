package extract

import (
	"golang.org/x/net/html"
)

// SearchExtractor locates result links on a search page.
type SearchExtractor interface {
	// SearchLinks returns absolute result URLs in document order.
	// A page without results yields an empty slice.
	SearchLinks(doc *html.Node) []string
}

// DetailExtractor reads metadata from a repository page.
type DetailExtractor interface {
	// Owner returns the repository owner name.
	Owner(doc *html.Node) (string, error)

	// LanguageStats returns language name to usage percentage, e.g. "Go" -> "97.5%".
	LanguageStats(doc *html.Node) map[string]string
}
