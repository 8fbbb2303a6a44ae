package service

import "errors"

var (
	// ErrEmptyQuery is returned when a search is submitted without query text.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrSearchNotFound is returned when a search history identifier is unknown.
	ErrSearchNotFound = errors.New("search history not found")

	// ErrSearchFailed is the single generic failure surfaced by the
	// orchestrator when a store cannot be reached. Details are logged, not
	// returned.
	ErrSearchFailed = errors.New("failed to process search request")
)
