package domain

import "fmt"

// SearchResult is one ranked hit from semantic search.
// Results keep backend order; Score is passed through unrounded.
type SearchResult struct {
	DocumentID    int64      `json:"document_id"`
	DocumentTitle string     `json:"document_title"`
	Snippet       string     `json:"snippet"`
	Score         float64    `json:"score"`
	Source        *SourceRef `json:"source,omitempty"`
	Tags          []Tag      `json:"tags"`
	URL           string     `json:"url,omitempty"`
}

// Validate checks the result.
func (r *SearchResult) Validate() error {
	if r.DocumentID <= 0 {
		return fmt.Errorf("%w: search result missing document_id", ErrInvalidPayload)
	}
	if r.Source != nil {
		if err := r.Source.Validate(); err != nil {
			return fmt.Errorf("search result %d: %w", r.DocumentID, err)
		}
	}
	return nil
}

// SearchFilter narrows a search. Zero values are not sent.
type SearchFilter struct {
	Limit    int
	Tag      string
	SourceID int64
}
