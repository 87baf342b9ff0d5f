package tui

import "errors"

var (
	// ErrMissingSearchService means Ports.Search was nil.
	ErrMissingSearchService = errors.New("tui: search service is required")
	// ErrMissingDocumentService means Ports.Document was nil.
	ErrMissingDocumentService = errors.New("tui: document service is required")
	// ErrInvalidPorts means no ports were given.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")
)
