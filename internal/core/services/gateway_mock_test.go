package services

import (
	"context"
	"io"
	"sync"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// mockGateway implements driven.Gateway for testing.
// Each method returns the matching field and counts its calls.
type mockGateway struct {
	mu    sync.Mutex
	calls map[string]int

	user      *domain.User
	documents []domain.DocumentListItem
	document  *domain.Document
	tags      []domain.Tag
	results   []domain.SearchResult
	sources   []domain.DocumentSource
	source    *domain.DocumentSource
	jobs      []domain.CrawlJob
	job       *domain.CrawlJob
	analytics *domain.AnalyticsOverview

	// errs fails the named method.
	errs map[string]error

	lastCreds    domain.Credentials
	lastQuery    string
	lastPatch    domain.SourcePatch
	lastInput    domain.SourceInput
	lastUpload   domain.Upload
	uploadedBody []byte
}

// Ensure mock implements interface
var _ driven.Gateway = (*mockGateway)(nil)

func newMockGateway() *mockGateway {
	return &mockGateway{
		calls: make(map[string]int),
		errs:  make(map[string]error),
	}
}

func (m *mockGateway) hit(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	return m.errs[name]
}

func (m *mockGateway) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockGateway) Register(_ context.Context, creds domain.Credentials) (*domain.User, error) {
	m.lastCreds = creds
	if err := m.hit("Register"); err != nil {
		return nil, err
	}
	return &domain.User{ID: "u-1", Email: creds.Email}, nil
}

func (m *mockGateway) Login(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	m.lastCreds = creds
	if err := m.hit("Login"); err != nil {
		return nil, err
	}
	return &domain.LoginResult{Message: "Login successful", User: domain.User{ID: "u-1", Email: creds.Email}}, nil
}

func (m *mockGateway) Logout(_ context.Context) (*domain.Message, error) {
	if err := m.hit("Logout"); err != nil {
		return nil, err
	}
	return &domain.Message{Message: "Logged out"}, nil
}

func (m *mockGateway) CurrentUser(_ context.Context) (*domain.User, error) {
	if err := m.hit("CurrentUser"); err != nil {
		return nil, err
	}
	return m.user, nil
}

func (m *mockGateway) ListDocuments(_ context.Context, _ domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	if err := m.hit("ListDocuments"); err != nil {
		return nil, err
	}
	return m.documents, nil
}

func (m *mockGateway) GetDocument(_ context.Context, _ int64) (*domain.Document, error) {
	if err := m.hit("GetDocument"); err != nil {
		return nil, err
	}
	return m.document, nil
}

func (m *mockGateway) RegenerateSummary(_ context.Context, _ int64) (*domain.Document, error) {
	if err := m.hit("RegenerateSummary"); err != nil {
		return nil, err
	}
	return m.document, nil
}

func (m *mockGateway) ListTags(_ context.Context) ([]domain.Tag, error) {
	if err := m.hit("ListTags"); err != nil {
		return nil, err
	}
	return m.tags, nil
}

func (m *mockGateway) Search(_ context.Context, query string, _ domain.SearchFilter) ([]domain.SearchResult, error) {
	m.lastQuery = query
	if err := m.hit("Search"); err != nil {
		return nil, err
	}
	return m.results, nil
}

func (m *mockGateway) ListSources(_ context.Context) ([]domain.DocumentSource, error) {
	if err := m.hit("ListSources"); err != nil {
		return nil, err
	}
	return m.sources, nil
}

func (m *mockGateway) CreateSource(_ context.Context, in domain.SourceInput) (*domain.DocumentSource, error) {
	m.lastInput = in
	if err := m.hit("CreateSource"); err != nil {
		return nil, err
	}
	return &domain.DocumentSource{ID: 1, Name: in.Name, BaseURL: in.BaseURL, IsEnabled: true}, nil
}

func (m *mockGateway) UpdateSource(_ context.Context, id int64, patch domain.SourcePatch) (*domain.DocumentSource, error) {
	m.lastPatch = patch
	if err := m.hit("UpdateSource"); err != nil {
		return nil, err
	}
	src := &domain.DocumentSource{ID: id, Name: "MoF"}
	if patch.IsEnabled != nil {
		src.IsEnabled = *patch.IsEnabled
	}
	return src, nil
}

func (m *mockGateway) TriggerCrawl(_ context.Context, sourceID int64) (*domain.CrawlJob, error) {
	if err := m.hit("TriggerCrawl"); err != nil {
		return nil, err
	}
	if m.job != nil {
		return m.job, nil
	}
	return &domain.CrawlJob{ID: 7, SourceID: sourceID, Status: domain.CrawlPending}, nil
}

func (m *mockGateway) ListCrawlJobs(_ context.Context, _ int64) ([]domain.CrawlJob, error) {
	if err := m.hit("ListCrawlJobs"); err != nil {
		return nil, err
	}
	return m.jobs, nil
}

func (m *mockGateway) UploadDocument(_ context.Context, upload domain.Upload) (*domain.Document, error) {
	m.lastUpload = upload
	if err := m.hit("UploadDocument"); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, err
	}
	m.uploadedBody = body
	return &domain.Document{ID: 99, Title: upload.Title}, nil
}

func (m *mockGateway) AnalyticsOverview(_ context.Context) (*domain.AnalyticsOverview, error) {
	if err := m.hit("AnalyticsOverview"); err != nil {
		return nil, err
	}
	return m.analytics, nil
}

// mockSession implements driven.SessionState for testing.
type mockSession struct {
	has      bool
	cleared  int
	clearErr error
}

var _ driven.SessionState = (*mockSession)(nil)

func (m *mockSession) HasSession() bool { return m.has }

func (m *mockSession) Clear(_ context.Context) error {
	m.cleared++
	m.has = false
	return m.clearErr
}

// mockChecker implements driven.PDFChecker for testing.
type mockChecker struct {
	err    error
	called int
}

var _ driven.PDFChecker = (*mockChecker)(nil)

func (m *mockChecker) Check(r io.ReadSeeker) (*driven.PDFInfo, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	// Consume the reader so the service has to rewind it.
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &driven.PDFInfo{PageCount: 1, Version: "1.7"}, nil
}
