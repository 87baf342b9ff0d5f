package mcp

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results    []domain.SearchResult
	err        error
	lastQuery  string
	lastFilter domain.SearchFilter
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	filter domain.SearchFilter,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastFilter = filter
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.DocumentListItem
	document   *domain.Document
	tags       []domain.Tag
	err        error
	lastFilter domain.DocumentFilter
}

func (m *mockDocumentService) List(_ context.Context, filter domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	m.lastFilter = filter
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.document == nil || m.document.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.document, nil
}

func (m *mockDocumentService) RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error) {
	return m.Get(ctx, id)
}

func (m *mockDocumentService) Tags(_ context.Context) ([]domain.Tag, error) {
	return m.tags, m.err
}

func (m *mockDocumentService) Library(_ context.Context, _ domain.DocumentFilter) (*driving.Library, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.Library{Documents: m.documents, Tags: m.tags}, nil
}

// Ensure mocks implement interfaces
var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.DocumentService = (*mockDocumentService)(nil)
)
