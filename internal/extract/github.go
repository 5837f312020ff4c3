package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Selectors for the github.com markup. Attribute selectors with the full
// class value are used instead of class selectors so that only elements
// with exactly this class list match.
const (
	searchLinkSelector = `ul[class="repo-list"]` +
		` > li[class="repo-list-item hx_hit-repo d-flex flex-justify-start py-4 public source"]` +
		` > div[class="mt-n1 flex-auto"]` +
		` > div[class="d-flex"]` +
		` > div[class="f4 text-normal"]` +
		` > a[class="v-align-middle"]`

	ownerSelector = `span[itemprop="author"]`

	languageSelector = `a[data-ga-click="Repository, language stats search click, location:repo overview"]`
)

// GitHubSearch extracts result links from a github.com search page.
type GitHubSearch struct {
	// root is the site root that relative links are resolved against.
	root *url.URL
}

var _ SearchExtractor = (*GitHubSearch)(nil)

// NewGitHubSearch returns a search extractor resolving links against root.
func NewGitHubSearch(root *url.URL) *GitHubSearch {
	return &GitHubSearch{root: root}
}

// SearchLinks returns the result links of the first result page.
// Anchors without an href, or with an href that does not parse, are skipped.
func (g *GitHubSearch) SearchLinks(doc *html.Node) []string {
	links := make([]string, 0)
	goquery.NewDocumentFromNode(doc).Find(searchLinkSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, g.root.ResolveReference(ref).String())
	})
	return links
}

// GitHubRepository extracts metadata from a github.com repository page.
type GitHubRepository struct{}

var _ DetailExtractor = GitHubRepository{}

// Owner returns the trimmed text of the first author element.
func (GitHubRepository) Owner(doc *html.Node) (string, error) {
	sel := goquery.NewDocumentFromNode(doc).Find(ownerSelector).First()
	if sel.Length() == 0 {
		return "", ErrOwnerNotFound
	}
	owner := strings.TrimSpace(sel.Text())
	if owner == "" {
		return "", ErrOwnerNotFound
	}
	return owner, nil
}

// LanguageStats reads every language statistics link. The link text holds
// the language name and its percentage on separate lines. When a language
// appears twice the later entry wins.
func (GitHubRepository) LanguageStats(doc *html.Node) map[string]string {
	stats := make(map[string]string)
	goquery.NewDocumentFromNode(doc).Find(languageSelector).Each(func(_ int, s *goquery.Selection) {
		lines := nonBlankLines(s.Text())
		if len(lines) < 2 {
			return
		}
		stats[lines[0]] = lines[1]
	})
	return stats
}

// nonBlankLines splits text into trimmed, non-empty lines.
func nonBlankLines(text string) []string {
	var lines []string
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
