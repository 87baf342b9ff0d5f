package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/testutil/fakebackend"
)

func seedDocuments(b *fakebackend.Backend) {
	crawled := domain.NewTime(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	finance := domain.Tag{ID: 1, Name: "Finance", Slug: "finance"}
	health := domain.Tag{ID: 2, Name: "Health", Slug: "health"}
	b.AddTag(finance)
	b.AddTag(health)

	b.AddDocument(domain.Document{
		ID:          42,
		Title:       "Budget 2024",
		ContentType: "pdf",
		ContentText: "Full budget text",
		URL:         "https://mof.gov.bd/budget.pdf",
		Summary:     "Spending rises in health and education.",
		Language:    "en",
		CrawledAt:   crawled,
		Source:      &domain.SourceRef{ID: 3, Name: "Ministry of Finance", BaseURL: "https://mof.gov.bd"},
		Tags:        []domain.Tag{finance},
		Entities:    []domain.Entity{{ID: 9, Name: "Bangladesh Bank", Type: "organization"}},
		Sections: []domain.DocumentSection{
			{ID: 2, OrderIndex: 1, Heading: "Allocations", Text: "Health gets more."},
			{ID: 1, OrderIndex: 0, Text: "Introduction text."},
		},
	})
	b.AddDocument(domain.Document{
		ID:          43,
		Title:       "স্বাস্থ্য নির্দেশিকা",
		ContentType: "html",
		CrawledAt:   crawled,
		Tags:        []domain.Tag{health},
	})
}

func TestDocumentList(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)
	seedDocuments(env.backend)

	out, _, err := execute(t, "document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[42] Budget 2024")
	assert.Contains(t, out, "Ministry of Finance")
	assert.Contains(t, out, "[43] স্বাস্থ্য নির্দেশিকা")

	// Unchanged paging flags are not sent
	assert.Empty(t, env.backend.LastRequest().RawQuery)
}

func TestDocumentList_Filters(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)
	seedDocuments(env.backend)

	out, _, err := execute(t, "doc", "list", "--tag", "health", "--skip", "0", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "[43]")
	assert.NotContains(t, out, "[42]")

	query := env.backend.LastRequest().RawQuery
	assert.Contains(t, query, "tag=health")
	assert.Contains(t, query, "skip=0")
	assert.Contains(t, query, "limit=5")
}

func TestDocumentList_Empty(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)

	out, _, err := execute(t, "document", "list", "--search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

func TestDocumentGet(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)
	seedDocuments(env.backend)

	out, _, err := execute(t, "document", "get", "42", "--sections")
	require.NoError(t, err)
	assert.Contains(t, out, "Document: Budget 2024")
	assert.Contains(t, out, "Source:    Ministry of Finance")
	assert.Contains(t, out, "Entities:  Bangladesh Bank (organization)")
	assert.Contains(t, out, "Spending rises in health and education.")
	assert.Contains(t, out, "Sections (2):")
	assert.Contains(t, out, "Health gets more.")
	assert.NotContains(t, out, "Full budget text")

	// Sections print in order_index order
	first := strings.Index(out, "Section 1")
	second := strings.Index(out, "Allocations")
	require.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, second)
}

func TestDocumentGet_NotFound(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)

	_, _, err := execute(t, "document", "get", "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "get document 404")
}

func TestDocumentGet_InvalidID(t *testing.T) {
	setupTestServices(t, false)

	for _, arg := range []string{"abc", "0", "-3"} {
		_, _, err := execute(t, "document", "get", "--", arg)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, arg)
	}
}

func TestDocumentRegenerate(t *testing.T) {
	env := setupTestServices(t, true)
	env.login(t)
	seedDocuments(env.backend)

	out, errOut, err := execute(t, "document", "regenerate", "42")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Regenerating summary for document 42...")
	assert.Contains(t, out, "Regenerated summary of Budget 2024")
}

func TestDocumentRegenerate_Forbidden(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)
	seedDocuments(env.backend)

	_, _, err := execute(t, "document", "regenerate", "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, FormatError(err), "needs an admin account")
}

func TestDocumentTags(t *testing.T) {
	env := setupTestServices(t, false)
	env.login(t)
	seedDocuments(env.backend)

	out, _, err := execute(t, "document", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "finance")
	assert.Contains(t, out, "Health")

	out, _, err = execute(t, "document", "tags", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"slug": "finance"`)
}

func TestDocument_NoService(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { resetFlags(rootCmd) })

	for _, args := range [][]string{
		{"document", "list"},
		{"document", "get", "1"},
		{"document", "regenerate", "1"},
		{"document", "tags"},
	} {
		_, _, err := execute(t, args...)
		assert.ErrorIs(t, err, errNoDocumentService)
	}
}
