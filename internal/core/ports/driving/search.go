package driving

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// SearchService answers natural-language queries against the document corpus.
type SearchService interface {
	// Search returns hits in the order the backend ranked them. A blank
	// query fails with domain.ErrInvalidInput.
	Search(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchResult, error)
}
