package driving

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// DocumentService browses discovered documents.
type DocumentService interface {
	// List returns documents matching filter.
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentListItem, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// RegenerateSummary asks the backend to recompute the summary.
	RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error)

	// Tags returns all tags.
	Tags(ctx context.Context) ([]domain.Tag, error)

	// Library loads a document page and the tag list together.
	Library(ctx context.Context, filter domain.DocumentFilter) (*Library, error)
}

// Library is the data behind a documents page.
type Library struct {
	Documents []domain.DocumentListItem `json:"documents"`
	Tags      []domain.Tag              `json:"tags"`
}
