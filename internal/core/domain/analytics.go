package domain

import "fmt"

// AnalyticsOverview is a read-only usage snapshot aggregated by the backend.
type AnalyticsOverview struct {
	TotalDocuments     int64             `json:"total_documents"`
	TotalUsers         int64             `json:"total_users"`
	TotalSources       int64             `json:"total_sources"`
	TopViewedDocuments []ViewedDocument  `json:"top_viewed_documents"`
	TopSearchQueries   []SearchQueryStat `json:"top_search_queries"`
	RecentActivity     []ActivityEvent   `json:"recent_activity"`
}

// ViewedDocument is a document ranked by view count.
type ViewedDocument struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

// SearchQueryStat is a query ranked by frequency.
type SearchQueryStat struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// ActivityEvent is an entry in the backend activity log.
type ActivityEvent struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt Time           `json:"created_at"`
}

// Validate checks the counters are sane.
func (a *AnalyticsOverview) Validate() error {
	if a.TotalDocuments < 0 || a.TotalUsers < 0 || a.TotalSources < 0 {
		return fmt.Errorf("%w: analytics totals must not be negative", ErrInvalidPayload)
	}
	for _, d := range a.TopViewedDocuments {
		if d.Views < 0 {
			return fmt.Errorf("%w: document %d has negative views", ErrInvalidPayload, d.ID)
		}
	}
	for _, q := range a.TopSearchQueries {
		if q.Count < 0 {
			return fmt.Errorf("%w: query %q has negative count", ErrInvalidPayload, q.Query)
		}
	}
	return nil
}
