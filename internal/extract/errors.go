package extract

import "errors"

// ErrOwnerNotFound is returned when a repository page has no owner element,
// or the element has no text.
var ErrOwnerNotFound = errors.New("repository owner not found")
