package model

import (
	"errors"

	"golang.org/x/text/cases"
)

// ErrInvalidType is returned when the result type is not one of the supported types.
var ErrInvalidType = errors.New("invalid type: valid types are 'Repositories', 'Wikis', 'Issues'")

// ResultType is the kind of search result requested from the code-hosting site.
// The string value is used verbatim as the "type" filter of the search URL.
type ResultType string

const (
	// ResultTypeRepositories searches repositories. Only this type is enriched
	// with owner and language statistics.
	ResultTypeRepositories ResultType = "repositories"
	// ResultTypeIssues searches issues.
	ResultTypeIssues ResultType = "issues"
	// ResultTypeWikis searches wiki pages.
	ResultTypeWikis ResultType = "wikis"
)

// ResultTypes returns all supported result types in a stable order.
func ResultTypes() []ResultType {
	return []ResultType{ResultTypeRepositories, ResultTypeIssues, ResultTypeWikis}
}

// ParseResultType parses s case-insensitively.
// "Repositories", "REPOSITORIES" and "repositories" all map to ResultTypeRepositories.
func ParseResultType(s string) (ResultType, error) {
	// A Caser is stateful and not safe for concurrent use.
	folded := cases.Fold().String(s)
	for _, t := range ResultTypes() {
		if folded == string(t) {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

// String returns the string representation of the ResultType.
func (t ResultType) String() string {
	return string(t)
}

// Enriched reports whether results of this type get a follow-up detail fetch.
func (t ResultType) Enriched() bool {
	return t == ResultTypeRepositories
}
