package domain

import (
	"fmt"
	"sort"
)

// Document is a discovered government document as returned by the detail endpoint.
// It is the aggregate root: entities and sections only exist as children of a document.
type Document struct {
	// ID is the backend identifier.
	ID int64 `json:"id"`

	// Title is the document title extracted at ingestion.
	Title string `json:"title"`

	// ContentText is the full extracted text.
	ContentText string `json:"content_text"`

	// ContentType is the original media type (e.g. "pdf", "html").
	ContentType string `json:"content_type"`

	// URL is where the document was found. Uploaded documents have none.
	URL string `json:"url,omitempty"`

	// PublishedAt is the publication date if the scraper found one.
	PublishedAt *Time `json:"published_at,omitempty"`

	// CrawledAt is when the backend ingested the document.
	CrawledAt Time `json:"crawled_at"`

	// Summary is the AI-generated summary.
	Summary string `json:"summary,omitempty"`

	// Explanation is the AI-generated plain-language explanation.
	Explanation string `json:"explanation,omitempty"`

	// Language is the detected language code.
	Language string `json:"language,omitempty"`

	CreatedAt Time `json:"created_at"`
	UpdatedAt Time `json:"updated_at"`

	// Source is the crawl source the document came from.
	Source *SourceRef `json:"source,omitempty"`

	Tags     []Tag             `json:"tags"`
	Entities []Entity          `json:"entities"`
	Sections []DocumentSection `json:"sections"`
}

// Validate checks the document and its children.
func (d *Document) Validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: document missing id", ErrInvalidPayload)
	}
	if d.Source != nil {
		if err := d.Source.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	for i := range d.Tags {
		if err := d.Tags[i].Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	for i := range d.Entities {
		if err := d.Entities[i].Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	for i := range d.Sections {
		if err := d.Sections[i].Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	return nil
}

// OrderedSections returns the sections sorted by OrderIndex without modifying d.
func (d *Document) OrderedSections() []DocumentSection {
	out := make([]DocumentSection, len(d.Sections))
	copy(out, d.Sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// DocumentListItem is the list projection of a Document.
type DocumentListItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ContentType string     `json:"content_type"`
	Summary     string     `json:"summary,omitempty"`
	CrawledAt   Time       `json:"crawled_at"`
	Source      *SourceRef `json:"source,omitempty"`
	Tags        []Tag      `json:"tags"`
}

// Validate checks the list item.
func (d *DocumentListItem) Validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: document list item missing id", ErrInvalidPayload)
	}
	if d.Source != nil {
		if err := d.Source.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	for i := range d.Tags {
		if err := d.Tags[i].Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	return nil
}

// Tag is a topic label. Slugs are unique within a deployment.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Validate checks the tag.
func (t *Tag) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: tag missing id", ErrInvalidPayload)
	}
	if t.Slug == "" {
		return fmt.Errorf("%w: tag %d missing slug", ErrInvalidPayload, t.ID)
	}
	return nil
}

// Entity is a named entity extracted from a document.
type Entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Type is the entity category (e.g. "organization", "person").
	Type string `json:"type"`
}

// Validate checks the entity.
func (e *Entity) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: entity missing id", ErrInvalidPayload)
	}
	return nil
}

// DocumentSection is one structural section of a document.
type DocumentSection struct {
	ID         int64  `json:"id"`
	OrderIndex int    `json:"order_index"`
	Heading    string `json:"heading,omitempty"`
	Text       string `json:"text"`
}

// Validate checks the section.
func (s *DocumentSection) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: section missing id", ErrInvalidPayload)
	}
	return nil
}

// DocumentFilter narrows a document listing.
// Skip and Limit are pointers so an explicit zero is still sent.
type DocumentFilter struct {
	Skip     *int
	Limit    *int
	Tag      string
	SourceID int64
	Search   string
}

// Page returns a filter for one page of results.
func Page(skip, limit int) DocumentFilter {
	return DocumentFilter{Skip: &skip, Limit: &limit}
}
