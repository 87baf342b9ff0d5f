// Package documents provides the document library view for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/components/input"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/components/list"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/messages"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/styles"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// DefaultPageSize is the number of documents requested per page.
const DefaultPageSize = 20

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service is required")

// View is the document library: a paged list with tag and text filters.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	filter    *input.Field
	filtering bool

	documents []domain.DocumentListItem
	tags      []domain.Tag
	tagIndex  int // -1 means all tags
	search    string
	skip      int
	pageSize  int

	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	filter := input.NewField(s, "Filter: ", "title contains...")
	filter.Blur()

	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		filter:          filter,
		tagIndex:        -1,
		pageSize:        DefaultPageSize,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used for loads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// currentFilter builds the listing filter from the view state.
func (v *View) currentFilter() domain.DocumentFilter {
	f := domain.Page(v.skip, v.pageSize)
	f.Search = v.search
	if tag := v.ActiveTag(); tag != nil {
		f.Tag = tag.Slug
	}
	return f
}

func (v *View) load() tea.Cmd {
	v.loading = true
	svc := v.documentService
	ctx := v.ctx
	filter := v.currentFilter()
	return func() tea.Msg {
		if svc == nil {
			return messages.LibraryLoaded{Err: ErrNoDocumentService}
		}
		lib, err := svc.Library(ctx, filter)
		return messages.LibraryLoaded{Library: lib, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.handleFilterKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.LibraryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		lib := msg.Library
		if lib == nil {
			lib = &driving.Library{}
		}
		v.documents = lib.Documents
		v.setTags(lib.Tags)
		v.selected = 0
		v.scrollOffset = 0
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// setTags replaces the tag list, keeping the active tag if it still exists.
func (v *View) setTags(tags []domain.Tag) {
	var active string
	if tag := v.ActiveTag(); tag != nil {
		active = tag.Slug
	}
	v.tags = tags
	v.tagIndex = -1
	for i := range tags {
		if tags[i].Slug == active {
			v.tagIndex = i
		}
	}
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Open):
		if doc := v.SelectedDocument(); doc != nil {
			id := doc.ID
			return v, func() tea.Msg {
				return messages.DocumentSelected{ID: id}
			}
		}
	case keymap.Matches(k, v.keymap.Filter):
		v.filtering = true
		v.filter.SetValue(v.search)
		return v, v.filter.Focus()
	case keymap.Matches(k, v.keymap.NextTag):
		if len(v.tags) == 0 {
			return v, nil
		}
		v.tagIndex++
		if v.tagIndex >= len(v.tags) {
			v.tagIndex = -1
		}
		v.skip = 0
		return v, v.load()
	case keymap.Matches(k, v.keymap.NextPage):
		// A short page is the last one.
		if len(v.documents) < v.pageSize {
			return v, nil
		}
		v.skip += v.pageSize
		return v, v.load()
	case keymap.Matches(k, v.keymap.PrevPage):
		if v.skip == 0 {
			return v, nil
		}
		v.skip -= v.pageSize
		if v.skip < 0 {
			v.skip = 0
		}
		return v, v.load()
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.load()
	}

	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only enter and esc leave filter mode
	switch msg.Type {
	case tea.KeyEnter:
		v.filtering = false
		v.filter.Blur()
		v.search = strings.TrimSpace(v.filter.Value())
		v.skip = 0
		return v, v.load()
	case tea.KeyEsc:
		v.filtering = false
		v.filter.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	return v, cmd
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount is the number of two-line rows that fit.
func (v *View) visibleItemCount() int {
	available := (v.height - 10) / 2
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("\n")
	b.WriteString(v.renderFilters())
	b.WriteString("\n\n")

	if v.filtering {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents found."))
	default:
		visible := v.visibleItemCount()
		for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.renderDocument(i, &v.documents[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.DocumentsHelp())))

	return b.String()
}

func (v *View) renderFilters() string {
	tag := "all"
	if t := v.ActiveTag(); t != nil {
		tag = t.Name
		if tag == "" {
			tag = t.Slug
		}
	}
	parts := []string{
		"Tag: " + v.styles.Tag.Render(tag),
		fmt.Sprintf("Page: %d", v.Page()),
	}
	if v.search != "" {
		parts = append(parts, fmt.Sprintf("Filter: %q", v.search))
	}
	return v.styles.Muted.Render(strings.Join(parts, "  |  "))
}

func (v *View) renderDocument(index int, doc *domain.DocumentListItem) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := doc.Title
	if title == "" {
		title = fmt.Sprintf("Document %d", doc.ID)
	}
	maxTitle := v.width - 30
	if maxTitle < 10 {
		maxTitle = 10
	}
	title = list.Truncate(title, maxTitle)

	meta := []string{doc.CrawledAt.String()}
	if doc.Source != nil && doc.Source.Name != "" {
		meta = append(meta, doc.Source.Name)
	}
	if doc.ContentType != "" {
		meta = append(meta, doc.ContentType)
	}

	var line string
	if index == v.selected {
		line = v.styles.Selected.Render(indicator + title)
	} else {
		line = v.styles.Normal.Render(indicator + title)
	}
	second := "    " + v.styles.Muted.Render(strings.Join(meta, " · "))
	if len(doc.Tags) > 0 {
		second += "  " + v.styles.Tag.Render(list.TagNames(doc.Tags))
	}
	return line + "\n" + second
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filter.SetWidth(width)
}

// Documents returns the current page of documents.
func (v *View) Documents() []domain.DocumentListItem {
	return v.documents
}

// Tags returns the known tags.
func (v *View) Tags() []domain.Tag {
	return v.tags
}

// ActiveTag returns the tag filter, or nil when showing all tags.
func (v *View) ActiveTag() *domain.Tag {
	if v.tagIndex < 0 || v.tagIndex >= len(v.tags) {
		return nil
	}
	return &v.tags[v.tagIndex]
}

// Page returns the 1-based page number.
func (v *View) Page() int {
	return v.skip/v.pageSize + 1
}

// Search returns the active text filter.
func (v *View) Search() string {
	return v.search
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filtering
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.DocumentListItem {
	if v.selected < 0 || v.selected >= len(v.documents) {
		return nil
	}
	return &v.documents[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
