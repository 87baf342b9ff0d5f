package api

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Search runs a semantic search. Results are returned in backend order
// with scores untouched.
func (c *Client) Search(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	if err := c.getJSON(ctx, withQuery("/api/search", searchQuery(query, filter)), &results); err != nil {
		return nil, err
	}
	return results, nil
}
