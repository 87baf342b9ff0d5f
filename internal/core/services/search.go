package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs semantic search on the backend.
type SearchService struct {
	gateway driven.Gateway
}

// NewSearchService creates a new search service.
func NewSearchService(gateway driven.Gateway) *SearchService {
	return &SearchService{gateway: gateway}
}

// Search performs semantic search. The query is sent as given; a blank one
// is rejected without a request.
// Results keep backend order and scores are returned as received.
func (s *SearchService) Search(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is empty", domain.ErrInvalidInput)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}

	logger.Section("Search")
	logger.Debug("query=%q tag=%q source=%d limit=%d", query, filter.Tag, filter.SourceID, filter.Limit)

	results, err := s.gateway.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	logger.Debug("search: %d results", len(results))
	return results, nil
}
