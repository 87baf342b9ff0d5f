// Package tui provides an interactive terminal interface for BdLens.
// It is a driving adapter: every view talks to the core through driving ports.
package tui

import (
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Search runs semantic search.
	Search driving.SearchService

	// Documents browses the document library.
	Documents driving.DocumentService

	// Admin manages sources and crawls. Optional: without it the
	// sources view reports that admin access is unavailable.
	Admin driving.AdminService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
