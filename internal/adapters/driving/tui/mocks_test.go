package tui

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

type mockSearch struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearch) Search(context.Context, string, domain.SearchFilter) ([]domain.SearchResult, error) {
	return m.results, m.err
}

type mockDocuments struct {
	library *driving.Library
	doc     *domain.Document
	err     error
}

func (m *mockDocuments) List(context.Context, domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	return m.library.Documents, m.err
}

func (m *mockDocuments) Get(_ context.Context, id int64) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	d := *m.doc
	d.ID = id
	return &d, nil
}

func (m *mockDocuments) RegenerateSummary(ctx context.Context, id int64) (*domain.Document, error) {
	return m.Get(ctx, id)
}

func (m *mockDocuments) Tags(context.Context) ([]domain.Tag, error) {
	return m.library.Tags, m.err
}

func (m *mockDocuments) Library(context.Context, domain.DocumentFilter) (*driving.Library, error) {
	return m.library, m.err
}

type mockAdmin struct {
	overview *driving.SourcesOverview
	err      error
}

func (m *mockAdmin) Sources(context.Context) ([]domain.DocumentSource, error) {
	return m.overview.Sources, m.err
}

func (m *mockAdmin) CreateSource(context.Context, domain.SourceInput) (*domain.DocumentSource, error) {
	return nil, m.err
}

func (m *mockAdmin) UpdateSource(context.Context, int64, domain.SourcePatch) (*domain.DocumentSource, error) {
	return nil, m.err
}

func (m *mockAdmin) ToggleSource(_ context.Context, id int64, enabled bool) (*domain.DocumentSource, error) {
	return &domain.DocumentSource{ID: id, Name: "src", IsEnabled: enabled}, m.err
}

func (m *mockAdmin) TriggerCrawl(_ context.Context, id int64) (*domain.CrawlJob, error) {
	return &domain.CrawlJob{ID: 1, SourceID: id, Status: domain.CrawlPending}, m.err
}

func (m *mockAdmin) CrawlJobs(context.Context, int64) ([]domain.CrawlJob, error) {
	return m.overview.Jobs, m.err
}

func (m *mockAdmin) SourcesOverview(context.Context) (*driving.SourcesOverview, error) {
	return m.overview, m.err
}

func (m *mockAdmin) Upload(context.Context, domain.Upload) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockAdmin) Analytics(context.Context) (*domain.AnalyticsOverview, error) {
	return nil, m.err
}

func testPorts() *Ports {
	return &Ports{
		Search: &mockSearch{results: []domain.SearchResult{
			{DocumentID: 7, DocumentTitle: "Budget speech", Score: 0.9},
		}},
		Documents: &mockDocuments{
			library: &driving.Library{
				Documents: []domain.DocumentListItem{{ID: 7, Title: "Budget speech"}},
				Tags:      []domain.Tag{{ID: 1, Name: "Budget", Slug: "budget"}},
			},
			doc: &domain.Document{Title: "Budget speech", Summary: "Spending up."},
		},
		Admin: &mockAdmin{overview: &driving.SourcesOverview{
			Sources: []domain.DocumentSource{{ID: 1, Name: "MoF", IsEnabled: true}},
		}},
	}
}
