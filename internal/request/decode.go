package request

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrRequestNotFound is returned by LoadFile when the file does not exist.
var ErrRequestNotFound = errors.New("request file not found")

// Decode reads one raw request object from r.
// The input may be JSON or YAML; JSON is a subset of YAML 1.2, so a single
// yaml.v3 decoder handles both.
func Decode(r io.Reader) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty request", ErrSchema)
		}
		return nil, fmt.Errorf("%w: %v", ErrSchema, err) //nolint:errorlint // yaml errors are not part of the API
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: request must be an object", ErrSchema)
	}
	return raw, nil
}

// LoadFile reads a raw request from a JSON or YAML file.
func LoadFile(path string) (map[string]any, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided request path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// FromValues builds a raw request from already split values, such as CLI flags.
// The result still has to go through Validate.
func FromValues(keywords, proxies []string, resultType string) map[string]any {
	return map[string]any{
		KeyKeywords: keywords,
		KeyProxies:  proxies,
		KeyType:     resultType,
	}
}
