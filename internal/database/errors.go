package database

import "errors"

var (
	// ErrRunNotFound is returned when no stored run matches an ID.
	ErrRunNotFound = errors.New("crawl run not found")

	// ErrAmbiguousRunID is returned when an ID prefix matches several runs.
	ErrAmbiguousRunID = errors.New("crawl run ID prefix is ambiguous")

	// ErrDatabaseNotFound is returned by Open when the database must exist but does not.
	ErrDatabaseNotFound = errors.New("database not found")
)
