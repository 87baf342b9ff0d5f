package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// ListDocuments returns documents matching filter.
func (c *Client) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	var docs []domain.DocumentListItem
	if err := c.getJSON(ctx, withQuery("/api/documents", documentQuery(filter)), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument returns one document with its sections, entities and tags.
func (c *Client) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	var doc domain.Document
	if err := c.getJSON(ctx, fmt.Sprintf("/api/documents/%d", id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// RegenerateSummary blocks until the backend has recomputed the summary.
func (c *Client) RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error) {
	var doc domain.Document
	endpoint := fmt.Sprintf("/api/documents/%d/regenerate-summary", id)
	if err := c.Do(ctx, endpoint, RequestOptions{Method: http.MethodPost}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListTags returns every tag.
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := c.getJSON(ctx, "/api/documents/tags/list", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
