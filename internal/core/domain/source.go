package domain

import "fmt"

// ScraperType selects the backend parsing strategy for a crawl source.
// The set is backend-defined; the client only checks known values on input.
type ScraperType string

const (
	ScraperSimple ScraperType = "simple"
	ScraperDNCC   ScraperType = "dncc"
	ScraperMOPA   ScraperType = "mopa"
)

// ScraperTypes lists the scraper types known to this client.
func ScraperTypes() []ScraperType {
	return []ScraperType{ScraperSimple, ScraperDNCC, ScraperMOPA}
}

// IsKnown reports whether s is one of ScraperTypes.
func (s ScraperType) IsKnown() bool {
	switch s {
	case ScraperSimple, ScraperDNCC, ScraperMOPA:
		return true
	}
	return false
}

// DocumentSource is a crawl source configured by an admin.
type DocumentSource struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`

	// URLPattern restricts which links the crawler follows.
	URLPattern string `json:"url_pattern,omitempty"`

	// ScraperType may be absent in admin responses.
	ScraperType ScraperType `json:"scraper_type,omitempty"`

	IsEnabled     bool  `json:"is_enabled"`
	LastCrawledAt *Time `json:"last_crawled_at,omitempty"`
	CreatedAt     Time  `json:"created_at"`
}

// Validate checks the source.
func (s *DocumentSource) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: source missing id", ErrInvalidPayload)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: source %d missing name", ErrInvalidPayload, s.ID)
	}
	return nil
}

// SourceRef is the compact source embedded in documents and search results.
type SourceRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// Validate checks the reference.
func (s *SourceRef) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: source reference missing id", ErrInvalidPayload)
	}
	return nil
}

// SourceInput is the body for creating a source.
type SourceInput struct {
	Name        string      `json:"name"`
	BaseURL     string      `json:"base_url"`
	URLPattern  string      `json:"url_pattern,omitempty"`
	ScraperType ScraperType `json:"scraper_type,omitempty"`
	IsEnabled   *bool       `json:"is_enabled,omitempty"`
}

// SourcePatch is a partial update. Only non-nil fields are serialised,
// so the backend leaves everything else untouched.
type SourcePatch struct {
	Name        *string      `json:"name,omitempty"`
	BaseURL     *string      `json:"base_url,omitempty"`
	URLPattern  *string      `json:"url_pattern,omitempty"`
	ScraperType *ScraperType `json:"scraper_type,omitempty"`
	IsEnabled   *bool        `json:"is_enabled,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SourcePatch) IsEmpty() bool {
	return p.Name == nil && p.BaseURL == nil && p.URLPattern == nil &&
		p.ScraperType == nil && p.IsEnabled == nil
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
