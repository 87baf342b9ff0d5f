package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService wraps the admin endpoints. The backend enforces the admin
// role; a non-admin session surfaces as domain.ErrForbidden.
type AdminService struct {
	gateway driven.Gateway
	checker driven.PDFChecker
}

// NewAdminService creates a new admin service.
// checker is optional; when nil, uploads skip the local PDF preflight.
func NewAdminService(gateway driven.Gateway, checker driven.PDFChecker) *AdminService {
	return &AdminService{
		gateway: gateway,
		checker: checker,
	}
}

// SetPDFChecker replaces the preflight checker. Pass nil to disable it.
func (s *AdminService) SetPDFChecker(checker driven.PDFChecker) {
	s.checker = checker
}

// Sources lists crawl sources.
func (s *AdminService) Sources(ctx context.Context) ([]domain.DocumentSource, error) {
	return s.gateway.ListSources(ctx)
}

// CreateSource validates in and creates the source.
func (s *AdminService) CreateSource(ctx context.Context, in domain.SourceInput) (*domain.DocumentSource, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.BaseURL = strings.TrimSpace(in.BaseURL)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: source name is required", domain.ErrInvalidInput)
	}
	if err := checkBaseURL(in.BaseURL); err != nil {
		return nil, err
	}
	if in.ScraperType != "" && !in.ScraperType.IsKnown() {
		return nil, unknownScraper(in.ScraperType)
	}

	src, err := s.gateway.CreateSource(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create source %q: %w", in.Name, err)
	}
	logger.Debug("admin: created source %d (%s)", src.ID, src.Name)
	return src, nil
}

// UpdateSource applies patch. Empty patches are rejected.
func (s *AdminService) UpdateSource(ctx context.Context, id int64, patch domain.SourcePatch) (*domain.DocumentSource, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: source id must be positive", domain.ErrInvalidInput)
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: source name must not be blank", domain.ErrInvalidInput)
	}
	if patch.BaseURL != nil {
		if err := checkBaseURL(*patch.BaseURL); err != nil {
			return nil, err
		}
	}
	if patch.ScraperType != nil && !patch.ScraperType.IsKnown() {
		return nil, unknownScraper(*patch.ScraperType)
	}

	return s.gateway.UpdateSource(ctx, id, patch)
}

// ToggleSource enables or disables a source.
func (s *AdminService) ToggleSource(ctx context.Context, id int64, enabled bool) (*domain.DocumentSource, error) {
	return s.UpdateSource(ctx, id, domain.SourcePatch{IsEnabled: domain.Ptr(enabled)})
}

// TriggerCrawl queues a crawl. The returned job reflects its initial state.
func (s *AdminService) TriggerCrawl(ctx context.Context, sourceID int64) (*domain.CrawlJob, error) {
	if sourceID <= 0 {
		return nil, fmt.Errorf("%w: source id must be positive", domain.ErrInvalidInput)
	}
	job, err := s.gateway.TriggerCrawl(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	logger.Debug("admin: crawl job %d queued for source %d (%s)", job.ID, sourceID, job.Status)
	return job, nil
}

// CrawlJobs lists jobs, for one source when sourceID is non-zero.
func (s *AdminService) CrawlJobs(ctx context.Context, sourceID int64) ([]domain.CrawlJob, error) {
	if sourceID < 0 {
		return nil, fmt.Errorf("%w: source id must not be negative", domain.ErrInvalidInput)
	}
	return s.gateway.ListCrawlJobs(ctx, sourceID)
}

// SourcesOverview loads sources and all crawl jobs concurrently.
func (s *AdminService) SourcesOverview(ctx context.Context) (*driving.SourcesOverview, error) {
	var ov driving.SourcesOverview

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		sources, err := s.gateway.ListSources(egCtx)
		if err != nil {
			return fmt.Errorf("list sources: %w", err)
		}
		ov.Sources = sources
		return nil
	})
	eg.Go(func() error {
		jobs, err := s.gateway.ListCrawlJobs(egCtx, 0)
		if err != nil {
			return fmt.Errorf("list crawl jobs: %w", err)
		}
		ov.Jobs = jobs
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// Upload submits a document. When a checker is set, the content is
// seekable and SkipCheck is false, the file is validated locally first.
func (s *AdminService) Upload(ctx context.Context, upload domain.Upload) (*domain.Document, error) {
	if upload.Content == nil {
		return nil, fmt.Errorf("%w: upload has no content", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(upload.FileName) == "" {
		return nil, fmt.Errorf("%w: upload needs a file name", domain.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(upload.FileName), ".pdf") {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, upload.FileName)
	}
	if upload.SourceID < 0 {
		return nil, fmt.Errorf("%w: source id must not be negative", domain.ErrInvalidInput)
	}

	if rs, ok := upload.Content.(io.ReadSeeker); ok && s.checker != nil && !upload.SkipCheck {
		info, err := s.checker.Check(rs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", upload.FileName, err)
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", upload.FileName, err)
		}
		logger.Debug("admin: %s passed preflight (PDF %s, %d pages)", upload.FileName, info.Version, info.PageCount)
	}

	doc, err := s.gateway.UploadDocument(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", upload.FileName, err)
	}
	logger.Debug("admin: uploaded %s as document %d", upload.FileName, doc.ID)
	return doc, nil
}

// Analytics returns the usage snapshot.
func (s *AdminService) Analytics(ctx context.Context) (*domain.AnalyticsOverview, error) {
	return s.gateway.AnalyticsOverview(ctx)
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url must be an absolute http(s) URL", domain.ErrInvalidInput)
	}
	return nil
}

func unknownScraper(st domain.ScraperType) error {
	known := make([]string, 0, len(domain.ScraperTypes()))
	for _, t := range domain.ScraperTypes() {
		known = append(known, string(t))
	}
	return fmt.Errorf("%w: unknown scraper type %q (known: %s)", domain.ErrInvalidInput, st, strings.Join(known, ", "))
}
