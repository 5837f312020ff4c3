// Package extract turns parsed search and repository pages into data.
//
// Extraction follows fixed structural paths in the site's markup. The
// paths are expressed as CSS selectors with child combinators and exact
// class attribute values, so a page whose markup drifts from the expected
// structure yields no matches rather than wrong matches.
//
// Two interfaces are provided so the crawler can be pointed at a different
// markup layout without changes:
//
//   - SearchExtractor returns the result links of a search page.
//   - DetailExtractor returns the owner and language statistics of a
//     repository page.
//
// GitHubSearch and GitHubRepository implement them for github.com.
package extract
