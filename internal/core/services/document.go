package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService browses documents through the gateway.
type DocumentService struct {
	gateway driven.Gateway
}

// NewDocumentService creates a new document service.
func NewDocumentService(gateway driven.Gateway) *DocumentService {
	return &DocumentService{gateway: gateway}
}

// List returns documents matching filter.
func (s *DocumentService) List(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	if err := checkPage(filter); err != nil {
		return nil, err
	}
	return s.gateway.ListDocuments(ctx, filter)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: document id must be positive", domain.ErrInvalidInput)
	}
	return s.gateway.GetDocument(ctx, id)
}

// RegenerateSummary recomputes a document's summary. It blocks until the
// backend has finished, which can take a while.
func (s *DocumentService) RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: document id must be positive", domain.ErrInvalidInput)
	}
	logger.Debug("documents: regenerating summary for %d", id)
	return s.gateway.RegenerateSummary(ctx, id)
}

// Tags returns all tags.
func (s *DocumentService) Tags(ctx context.Context) ([]domain.Tag, error) {
	return s.gateway.ListTags(ctx)
}

// Library loads a page of documents and the tag list concurrently.
// The first failure cancels the other request.
func (s *DocumentService) Library(ctx context.Context, filter domain.DocumentFilter) (*driving.Library, error) {
	if err := checkPage(filter); err != nil {
		return nil, err
	}

	var lib driving.Library
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		docs, err := s.gateway.ListDocuments(egCtx, filter)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		lib.Documents = docs
		return nil
	})
	eg.Go(func() error {
		tags, err := s.gateway.ListTags(egCtx)
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		lib.Tags = tags
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("documents: loaded %d documents, %d tags", len(lib.Documents), len(lib.Tags))
	return &lib, nil
}

func checkPage(filter domain.DocumentFilter) error {
	if filter.Skip != nil && *filter.Skip < 0 {
		return fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidInput)
	}
	if filter.Limit != nil && *filter.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}
	return nil
}
