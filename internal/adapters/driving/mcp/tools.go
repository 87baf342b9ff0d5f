package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// defaultSearchLimit applies when the caller gives no limit.
const defaultSearchLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query to find documents"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Tag      string `json:"tag,omitempty" jsonschema:"only documents with this tag slug"`
	SourceID int64  `json:"source_id,omitempty" jsonschema:"only documents from this source"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID int64    `json:"document_id"`
	Title      string   `json:"title"`
	URI        string   `json:"uri"`
	URL        string   `json:"url,omitempty"`
	Score      float64  `json:"score"`
	Snippet    string   `json:"snippet,omitempty"`
	Source     string   `json:"source,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Skip     int    `json:"skip,omitempty" jsonschema:"number of documents to skip"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of documents (default 20)"`
	Tag      string `json:"tag,omitempty" jsonschema:"only documents with this tag slug"`
	SourceID int64  `json:"source_id,omitempty" jsonschema:"only documents from this source"`
	Search   string `json:"search,omitempty" jsonschema:"filter by title text"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentSummaryOutput `json:"documents"`
	Count     int                     `json:"count"`
}

// DocumentSummaryOutput is one document in a listing.
type DocumentSummaryOutput struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	URI       string   `json:"uri"`
	Summary   string   `json:"summary,omitempty"`
	Source    string   `json:"source,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CrawledAt string   `json:"crawled_at,omitempty"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID              int64 `json:"id" jsonschema:"the document id"`
	IncludeFullText bool  `json:"include_full_text,omitempty" jsonschema:"include the extracted text"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url,omitempty"`
	Source      string          `json:"source,omitempty"`
	PublishedAt string          `json:"published_at,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Entities    []string        `json:"entities,omitempty"`
	Sections    []SectionOutput `json:"sections,omitempty"`
	FullText    string          `json:"full_text,omitempty"`
}

// SectionOutput is one document section.
type SectionOutput struct {
	Heading string `json:"heading,omitempty"`
	Text    string `json:"text"`
}

// ListTagsOutput is the output schema for the list_tags tool.
type ListTagsOutput struct {
	Tags []TagOutput `json:"tags"`
}

// TagOutput is one tag.
type TagOutput struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Semantic search across Bangladesh government documents",
	}, s.handleSearch)

	if s.ports.Document == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents, newest first, optionally filtered by tag, source or title",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a document with its summary, entities and sections",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List the topic tags documents can be filtered by",
	}, s.handleListTags)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	filter := domain.SearchFilter{Limit: limit, Tag: input.Tag, SourceID: input.SourceID}
	results, err := s.ports.Search.Search(ctx, input.Query, filter)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := &results[i]
		output.Results[i] = SearchResultOutput{
			DocumentID: r.DocumentID,
			Title:      r.DocumentTitle,
			URI:        documentURI(r.DocumentID),
			URL:        r.URL,
			Score:      r.Score,
			Snippet:    r.Snippet,
			Tags:       tagSlugs(r.Tags),
		}
		if r.Source != nil {
			output.Results[i].Source = r.Source.Name
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	filter := domain.Page(input.Skip, limit)
	filter.Tag = input.Tag
	filter.SourceID = input.SourceID
	filter.Search = input.Search

	docs, err := s.ports.Document.List(ctx, filter)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentSummaryOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		d := &docs[i]
		output.Documents[i] = DocumentSummaryOutput{
			ID:      d.ID,
			Title:   d.Title,
			URI:     documentURI(d.ID),
			Summary: d.Summary,
			Tags:    tagSlugs(d.Tags),
		}
		if !d.CrawledAt.IsZero() {
			output.Documents[i].CrawledAt = d.CrawledAt.UTC().Format("2006-01-02")
		}
		if d.Source != nil {
			output.Documents[i].Source = d.Source.Name
		}
	}
	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, GetDocumentOutput{}, fmt.Errorf("getting document %d: %w", input.ID, err)
	}

	output := documentOutput(doc)
	if input.IncludeFullText {
		output.FullText = doc.ContentText
	}
	return nil, output, nil
}

// handleListTags handles the list_tags tool invocation.
func (s *Server) handleListTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListTagsOutput, error) {
	tags, err := s.ports.Document.Tags(ctx)
	if err != nil {
		return nil, ListTagsOutput{}, err
	}
	return nil, ListTagsOutput{Tags: tagOutputs(tags)}, nil
}

func documentOutput(doc *domain.Document) GetDocumentOutput {
	out := GetDocumentOutput{
		ID:          doc.ID,
		Title:       doc.Title,
		URL:         doc.URL,
		Summary:     doc.Summary,
		Explanation: doc.Explanation,
		Tags:        tagSlugs(doc.Tags),
	}
	if doc.Source != nil {
		out.Source = doc.Source.Name
	}
	if doc.PublishedAt != nil && !doc.PublishedAt.IsZero() {
		out.PublishedAt = doc.PublishedAt.UTC().Format("2006-01-02")
	}
	for _, e := range doc.Entities {
		out.Entities = append(out.Entities, e.Name)
	}
	for _, sec := range doc.OrderedSections() {
		out.Sections = append(out.Sections, SectionOutput{Heading: sec.Heading, Text: sec.Text})
	}
	return out
}

func tagSlugs(tags []domain.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	slugs := make([]string, len(tags))
	for i, t := range tags {
		slugs[i] = t.Slug
	}
	return slugs
}

func tagOutputs(tags []domain.Tag) []TagOutput {
	out := make([]TagOutput, len(tags))
	for i, t := range tags {
		out[i] = TagOutput{Slug: t.Slug, Name: t.Name}
	}
	return out
}
