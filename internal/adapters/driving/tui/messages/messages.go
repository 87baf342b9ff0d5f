// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewDocuments is the document library.
	ViewDocuments
	// ViewDocument shows a single document.
	ViewDocument
	// ViewSources is the crawl source admin view.
	ViewSources
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewDocuments:
		return "documents"
	case ViewDocument:
		return "document"
	case ViewSources:
		return "sources"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// LibraryLoaded carries a page of documents and the tag list.
type LibraryLoaded struct {
	Library *driving.Library
	Err     error
}

// DocumentSelected asks the app to open a document.
type DocumentSelected struct {
	ID int64
}

// DocumentLoaded carries a fetched document.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// SummaryRegenerated carries the document after a summary regeneration.
type SummaryRegenerated struct {
	Document *domain.Document
	Err      error
}

// SourcesLoaded carries sources and their crawl jobs.
type SourcesLoaded struct {
	Overview *driving.SourcesOverview
	Err      error
}

// SourceToggled is sent after a source was enabled or disabled.
type SourceToggled struct {
	Source *domain.DocumentSource
	Err    error
}

// CrawlTriggered is sent after a crawl was queued.
type CrawlTriggered struct {
	Job *domain.CrawlJob
	Err error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
