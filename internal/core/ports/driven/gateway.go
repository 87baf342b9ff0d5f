package driven

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Gateway is the typed BdLens backend REST surface.
// Each method maps to exactly one endpoint and performs exactly one request.
// Errors from implementations unwrap to domain.ErrAuthRequired,
// domain.ErrForbidden or domain.ErrNotFound where the status warrants it.
type Gateway interface {
	// Register creates an account. POST /api/auth/register
	Register(ctx context.Context, creds domain.Credentials) (*domain.User, error)

	// Login starts a session; the backend sets the access_token cookie. POST /api/auth/login
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)

	// Logout ends the session. POST /api/auth/logout
	Logout(ctx context.Context) (*domain.Message, error)

	// CurrentUser returns the session's user. GET /api/auth/me
	CurrentUser(ctx context.Context) (*domain.User, error)

	// ListDocuments returns a filtered page of documents. GET /api/documents
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentListItem, error)

	// GetDocument returns one document. GET /api/documents/{id}
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// RegenerateSummary recomputes the summary and blocks until done.
	// POST /api/documents/{id}/regenerate-summary
	RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error)

	// ListTags returns all tags. GET /api/documents/tags/list
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// Search runs a semantic search. GET /api/search
	Search(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchResult, error)

	// ListSources returns all crawl sources. GET /api/admin/sources
	ListSources(ctx context.Context) ([]domain.DocumentSource, error)

	// CreateSource adds a crawl source. POST /api/admin/sources
	CreateSource(ctx context.Context, in domain.SourceInput) (*domain.DocumentSource, error)

	// UpdateSource applies a partial update. PUT /api/admin/sources/{id}
	UpdateSource(ctx context.Context, id int64, patch domain.SourcePatch) (*domain.DocumentSource, error)

	// TriggerCrawl queues a crawl; the job reflects its initial state only.
	// POST /api/admin/sources/{id}/crawl
	TriggerCrawl(ctx context.Context, sourceID int64) (*domain.CrawlJob, error)

	// ListCrawlJobs returns jobs, optionally for one source. GET /api/admin/crawl-jobs
	ListCrawlJobs(ctx context.Context, sourceID int64) ([]domain.CrawlJob, error)

	// UploadDocument submits a file as multipart. POST /api/admin/documents/upload
	UploadDocument(ctx context.Context, upload domain.Upload) (*domain.Document, error)

	// AnalyticsOverview returns the usage snapshot. GET /api/admin/analytics/overview
	AnalyticsOverview(ctx context.Context) (*domain.AnalyticsOverview, error)
}
