package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/messages"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

type mockDocumentService struct {
	doc        *domain.Document
	regen      *domain.Document
	getErr     error
	regenErr   error
	gotID      int64
	regenCalls int
}

func (m *mockDocumentService) List(context.Context, domain.DocumentFilter) ([]domain.DocumentListItem, error) {
	return nil, nil
}

func (m *mockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	m.gotID = id
	return m.doc, m.getErr
}

func (m *mockDocumentService) RegenerateSummary(_ context.Context, id int64) (*domain.Document, error) {
	m.regenCalls++
	m.gotID = id
	return m.regen, m.regenErr
}

func (m *mockDocumentService) Tags(context.Context) ([]domain.Tag, error) {
	return nil, nil
}

func (m *mockDocumentService) Library(context.Context, domain.DocumentFilter) (*driving.Library, error) {
	return nil, nil
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		ID:          42,
		Title:       "Budget 2024-25",
		ContentType: "pdf",
		Language:    "en",
		URL:         "https://mof.gov.bd/budget.pdf",
		CrawledAt:   domain.NewTime(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)),
		Summary:     "Spending rises in education.",
		Source:      &domain.SourceRef{ID: 3, Name: "Ministry of Finance"},
		Tags:        []domain.Tag{{ID: 1, Name: "Budget", Slug: "budget"}},
		Entities:    []domain.Entity{{ID: 9, Name: "Bangladesh Bank", Type: "organization"}},
		Sections: []domain.DocumentSection{
			{ID: 2, OrderIndex: 1, Heading: "Second heading", Text: "second body"},
			{ID: 1, OrderIndex: 0, Heading: "First heading", Text: "first body"},
		},
	}
}

func opened(t *testing.T, svc *mockDocumentService) *View {
	t.Helper()
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 60)
	cmd := v.Open(42, messages.ViewSearch)
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.Nil(t, v.Init())
	assert.Nil(t, v.Document())
	assert.Equal(t, messages.ViewDocuments, v.Back())
	assert.Contains(t, v.View(), "No document loaded.")
}

func TestView_Open(t *testing.T) {
	svc := &mockDocumentService{doc: sampleDocument()}
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 60)

	cmd := v.Open(42, messages.ViewSearch)
	assert.Contains(t, v.View(), "Loading document...")

	v.Update(cmd())

	assert.Equal(t, int64(42), svc.gotID)
	require.NotNil(t, v.Document())
	assert.Equal(t, messages.ViewSearch, v.Back())

	view := v.View()
	assert.Contains(t, view, "Budget 2024-25")
	assert.Contains(t, view, "Ministry of Finance")
	assert.Contains(t, view, "2024-06-01 08:00")
	assert.Contains(t, view, "#Budget")
	assert.Contains(t, view, "Bangladesh Bank (organization)")
	assert.Contains(t, view, "Spending rises in education.")
	assert.Contains(t, view, "Sections (2)")
	assert.Less(t, strings.Index(view, "First heading"), strings.Index(view, "Second heading"))
}

func TestView_OpenError(t *testing.T) {
	v := opened(t, &mockDocumentService{getErr: errors.New("get document 42: not found")})

	assert.Nil(t, v.Document())
	assert.Contains(t, v.View(), "Error: get document 42: not found")
}

func TestView_OpenNilService(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.Update(v.Open(42, messages.ViewDocuments)())

	assert.ErrorIs(t, v.Err(), ErrNoDocumentService)
}

func TestView_NoSummaryHint(t *testing.T) {
	doc := sampleDocument()
	doc.Summary = ""
	v := opened(t, &mockDocumentService{doc: doc})

	assert.Contains(t, v.View(), "Press g to generate one.")
}

func TestView_Regenerate(t *testing.T) {
	updated := sampleDocument()
	updated.Summary = "A fresh summary."
	svc := &mockDocumentService{doc: sampleDocument(), regen: updated}
	v := opened(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	require.NotNil(t, cmd)
	assert.True(t, v.Regenerating())
	assert.Contains(t, v.View(), "Regenerating summary...")

	// A second press while in flight is ignored.
	_, again := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Nil(t, again)

	v.Update(cmd())

	assert.Equal(t, 1, svc.regenCalls)
	assert.False(t, v.Regenerating())
	assert.Contains(t, v.View(), "A fresh summary.")
	assert.Contains(t, v.View(), "Summary regenerated.")
}

func TestView_RegenerateError(t *testing.T) {
	svc := &mockDocumentService{doc: sampleDocument(), regenErr: errors.New("forbidden")}
	v := opened(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	v.Update(cmd())

	assert.EqualError(t, v.Err(), "forbidden")
	assert.Contains(t, v.View(), "Spending rises in education.")
}

func TestView_RegenerateWithoutDocument(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})

	assert.Nil(t, cmd)
}

func TestView_Scroll(t *testing.T) {
	doc := sampleDocument()
	doc.Summary = strings.Repeat("word ", 400)
	v := opened(t, &mockDocumentService{doc: doc})
	v.SetDimensions(60, 12)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.scrollOffset)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, v.scrollOffset)
	assert.Contains(t, v.View(), "lines]")

	for i := 0; i < 1000; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, v.maxScrollOffset(), v.scrollOffset)
}

func TestView_Back(t *testing.T) {
	v := opened(t, &mockDocumentService{doc: sampleDocument()})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}
