package driving

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// AdminService exposes admin-only operations. Every call needs an admin session.
type AdminService interface {
	// Sources lists crawl sources.
	Sources(ctx context.Context) ([]domain.DocumentSource, error)

	// CreateSource adds a source after local input checks.
	CreateSource(ctx context.Context, in domain.SourceInput) (*domain.DocumentSource, error)

	// UpdateSource applies a non-empty partial update.
	UpdateSource(ctx context.Context, id int64, patch domain.SourcePatch) (*domain.DocumentSource, error)

	// ToggleSource enables or disables a source.
	ToggleSource(ctx context.Context, id int64, enabled bool) (*domain.DocumentSource, error)

	// TriggerCrawl queues a crawl of a source.
	TriggerCrawl(ctx context.Context, sourceID int64) (*domain.CrawlJob, error)

	// CrawlJobs lists jobs, for one source when sourceID is non-zero.
	CrawlJobs(ctx context.Context, sourceID int64) ([]domain.CrawlJob, error)

	// SourcesOverview loads sources and crawl jobs together.
	SourcesOverview(ctx context.Context) (*SourcesOverview, error)

	// Upload submits a document, running the PDF preflight when enabled.
	Upload(ctx context.Context, upload domain.Upload) (*domain.Document, error)

	// Analytics returns the usage snapshot.
	Analytics(ctx context.Context) (*domain.AnalyticsOverview, error)
}

// SourcesOverview is the data behind the sources page.
type SourcesOverview struct {
	Sources []domain.DocumentSource `json:"sources"`
	Jobs    []domain.CrawlJob       `json:"jobs"`
}

// LatestJob returns the most recent job for sourceID, or nil.
func (o *SourcesOverview) LatestJob(sourceID int64) *domain.CrawlJob {
	var latest *domain.CrawlJob
	for i := range o.Jobs {
		j := &o.Jobs[i]
		if j.SourceID != sourceID {
			continue
		}
		if latest == nil || j.CreatedAt.After(latest.CreatedAt.Time) {
			latest = j
		}
	}
	return latest
}
