package request

import (
	"fmt"

	"github.com/nao1215/hubcrawl/internal/model"
	"github.com/nao1215/hubcrawl/internal/proxy"
)

// Keys of the raw request object.
const (
	KeyKeywords = "keywords"
	KeyProxies  = "proxies"
	KeyType     = "type"
)

// Validated holds the parts of a raw request that passed validation.
// It is what Validate returns; New adds the proxy choice on top of it.
type Validated struct {
	Keywords []string
	Proxies  []model.ProxyEndpoint
	Type     model.ResultType
}

// Validate checks raw and returns its validated parts.
//
// The checks are:
//   - "keywords" is a sequence of strings with at least one element
//   - "proxies" is a sequence of at least one "ip:port" string, each with a
//     valid IPv4/IPv6 address and a port in [0, 65535]
//   - "type" is a string equal to repositories, issues or wikis, ignoring case
//
// Every check runs even after an earlier one failed. On failure the error is
// a *ValidationError listing all problems.
func Validate(raw map[string]any) (Validated, error) {
	var (
		v        Validated
		problems []error
	)

	keywords, err := stringSlice(raw, KeyKeywords)
	switch {
	case err != nil:
		problems = append(problems, err)
	case len(keywords) == 0:
		problems = append(problems, ErrEmptyKeywords)
	default:
		v.Keywords = keywords
	}

	proxies, err := stringSlice(raw, KeyProxies)
	switch {
	case err != nil:
		problems = append(problems, err)
	case len(proxies) == 0:
		problems = append(problems, ErrEmptyProxies)
	}
	for i, s := range proxies {
		ep, err := model.NewProxyEndpoint(s)
		if err != nil {
			problems = append(problems, fmt.Errorf("proxies[%d]: %w", i, err))
			continue
		}
		v.Proxies = append(v.Proxies, ep)
	}

	typ, err := stringValue(raw, KeyType)
	if err != nil {
		problems = append(problems, err)
	} else {
		rt, err := model.ParseResultType(typ)
		if err != nil {
			problems = append(problems, fmt.Errorf("%q: %w", typ, err))
		} else {
			v.Type = rt
		}
	}

	if len(problems) > 0 {
		return Validated{}, &ValidationError{Problems: problems}
	}
	return v, nil
}

// New validates raw and selects the proxy for the crawl.
// The selection happens exactly once per request; the crawl reuses it for
// every fetch.
func New(raw map[string]any, selector proxy.Selector) (model.CrawlRequest, error) {
	v, err := Validate(raw)
	if err != nil {
		return model.CrawlRequest{}, err
	}
	if selector == nil {
		selector = proxy.NewRandomSelector()
	}
	return model.NewCrawlRequest(v.Keywords, v.Proxies, v.Type, selector.Select(v.Proxies)), nil
}

// stringSlice reads key as a sequence of strings.
// A missing key, a non-sequence value or a non-string element is a schema error.
// Emptiness is left to the caller.
func stringSlice(raw map[string]any, key string) ([]string, error) {
	value, ok := raw[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q is a required property", ErrSchema, key)
	}

	switch items := value.(type) {
	case []string:
		return items, nil
	case []any:
		out := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is not a string", ErrSchema, key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q is not of type 'array'", ErrSchema, key)
	}
}

// stringValue reads key as a string.
func stringValue(raw map[string]any, key string) (string, error) {
	value, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: %q is a required property", ErrSchema, key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not of type 'string'", ErrSchema, key)
	}
	return s, nil
}
