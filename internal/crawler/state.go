package crawler

import "fmt"

// State is a phase of a crawl.
type State int

const (
	// StateValidating checks the request and selects the proxy.
	StateValidating State = iota
	// StateSearching fetches the search page and extracts result links.
	StateSearching
	// StateEnrichingRepositories fetches each repository page.
	StateEnrichingRepositories
	// StateDone means the records are complete.
	StateDone
	// StateFailed means the crawl stopped with an error.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSearching:
		return "searching"
	case StateEnrichingRepositories:
		return "enriching repositories"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Observer is notified of every state a crawl enters, in order.
type Observer func(State)

// Failure reports the state a crawl was in when it failed.
type Failure struct {
	// State is the state in which the error occurred.
	State State

	// Err is the cause.
	Err error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("crawl failed while %s: %v", f.State, f.Err)
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error {
	return f.Err
}
