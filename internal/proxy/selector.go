package proxy

import (
	"math/rand/v2"

	"github.com/nao1215/hubcrawl/internal/model"
)

// Selector picks the proxy endpoint used for a whole crawl.
type Selector interface {
	// Select returns one element of pool. pool is never empty when called
	// with a validated request.
	Select(pool []model.ProxyEndpoint) model.ProxyEndpoint
}

// RandomSelector chooses uniformly at random.
type RandomSelector struct {
	// rng is nil when the package-level generator should be used.
	rng *rand.Rand
}

// RandomSelectorOption configures a RandomSelector.
type RandomSelectorOption func(*RandomSelector)

// WithSeed makes the selection deterministic. Intended for tests.
func WithSeed(seed uint64) RandomSelectorOption {
	return func(s *RandomSelector) {
		s.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // Proxy choice is not security sensitive
	}
}

// NewRandomSelector creates a RandomSelector.
func NewRandomSelector(opts ...RandomSelectorOption) *RandomSelector {
	s := &RandomSelector{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select implements Selector. It returns the zero endpoint for an empty pool.
func (s *RandomSelector) Select(pool []model.ProxyEndpoint) model.ProxyEndpoint {
	if len(pool) == 0 {
		return model.ProxyEndpoint{}
	}
	if s.rng != nil {
		return pool[s.rng.IntN(len(pool))]
	}
	return pool[rand.IntN(len(pool))] //nolint:gosec // Proxy choice is not security sensitive
}

// FirstSelector always picks the first endpoint of the pool.
// Useful when the caller has already ordered the pool by preference.
type FirstSelector struct{}

// Select implements Selector.
func (FirstSelector) Select(pool []model.ProxyEndpoint) model.ProxyEndpoint {
	if len(pool) == 0 {
		return model.ProxyEndpoint{}
	}
	return pool[0]
}
