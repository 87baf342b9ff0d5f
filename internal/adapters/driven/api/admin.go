package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// ListSources returns all crawl sources.
func (c *Client) ListSources(ctx context.Context) ([]domain.DocumentSource, error) {
	var sources []domain.DocumentSource
	if err := c.getJSON(ctx, "/api/admin/sources", &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// CreateSource adds a crawl source.
func (c *Client) CreateSource(ctx context.Context, in domain.SourceInput) (*domain.DocumentSource, error) {
	var src domain.DocumentSource
	if err := c.sendJSON(ctx, http.MethodPost, "/api/admin/sources", in, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// UpdateSource sends only the fields set on patch.
func (c *Client) UpdateSource(ctx context.Context, id int64, patch domain.SourcePatch) (*domain.DocumentSource, error) {
	var src domain.DocumentSource
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/sources/%d", id), patch, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// TriggerCrawl queues a crawl and returns the job in its initial state.
func (c *Client) TriggerCrawl(ctx context.Context, sourceID int64) (*domain.CrawlJob, error) {
	var job domain.CrawlJob
	endpoint := fmt.Sprintf("/api/admin/sources/%d/crawl", sourceID)
	if err := c.Do(ctx, endpoint, RequestOptions{Method: http.MethodPost}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListCrawlJobs returns crawl jobs, for one source when sourceID is non-zero.
func (c *Client) ListCrawlJobs(ctx context.Context, sourceID int64) ([]domain.CrawlJob, error) {
	q := url.Values{}
	if sourceID != 0 {
		q.Set("source_id", strconv.FormatInt(sourceID, 10))
	}

	var jobs []domain.CrawlJob
	if err := c.getJSON(ctx, withQuery("/api/admin/crawl-jobs", q), &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// AnalyticsOverview returns the usage snapshot.
func (c *Client) AnalyticsOverview(ctx context.Context) (*domain.AnalyticsOverview, error) {
	var overview domain.AnalyticsOverview
	if err := c.getJSON(ctx, "/api/admin/analytics/overview", &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
