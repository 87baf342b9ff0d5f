package mcp

import "github.com/bdlens/bdlens-cli/internal/core/ports/driving"

// Ports are the services the server calls. Search is required. Without
// Document only the search tool is offered and no resources are listed.
type Ports struct {
	Search   driving.SearchService
	Document driving.DocumentService
}

// Validate checks that the required services are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
