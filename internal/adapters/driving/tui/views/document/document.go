// Package document provides the single-document view for the TUI.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/components/list"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/messages"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/styles"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service is required")

// View shows one document: metadata, summary, explanation and sections.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	doc          *domain.Document
	back         messages.ViewType
	loading      bool
	regenerating bool
	notice       string
	err          error

	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new document view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		back:            messages.ViewDocuments,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts loading document id. Esc returns to back.
func (v *View) Open(id int64, back messages.ViewType) tea.Cmd {
	v.doc = nil
	v.back = back
	v.err = nil
	v.notice = ""
	v.scrollOffset = 0
	v.loading = true

	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{Err: ErrNoDocumentService}
		}
		doc, err := svc.Get(ctx, id)
		return messages.DocumentLoaded{Document: doc, Err: err}
	}
}

func (v *View) regenerate() tea.Cmd {
	if v.doc == nil || v.regenerating {
		return nil
	}
	v.regenerating = true
	v.notice = "Regenerating summary..."
	v.err = nil

	svc := v.documentService
	ctx := v.ctx
	id := v.doc.ID
	return func() tea.Msg {
		if svc == nil {
			return messages.SummaryRegenerated{Err: ErrNoDocumentService}
		}
		doc, err := svc.RegenerateSummary(ctx, id)
		return messages.SummaryRegenerated{Document: doc, Err: err}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.doc = msg.Document
		v.err = nil
		return v, nil

	case messages.SummaryRegenerated:
		v.regenerating = false
		if msg.Err != nil {
			v.notice = ""
			v.err = msg.Err
			return v, nil
		}
		if msg.Document != nil {
			v.doc = msg.Document
		}
		v.notice = "Summary regenerated."
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(k, v.keymap.Regenerate):
		return v, v.regenerate()
	}
	return v, nil
}

func (v *View) visibleLines() int {
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	n := len(v.buildContent()) - v.visibleLines()
	if n < 0 {
		return 0
	}
	return n
}

// buildContent lays the document out as display lines.
func (v *View) buildContent() []string {
	if v.doc == nil {
		return nil
	}
	d := v.doc

	lines := []string{
		field("ID", fmt.Sprintf("%d", d.ID)),
	}
	if d.Source != nil {
		lines = append(lines, field("Source", d.Source.Name))
	}
	if d.ContentType != "" {
		lines = append(lines, field("Type", d.ContentType))
	}
	if d.Language != "" {
		lines = append(lines, field("Language", d.Language))
	}
	if d.PublishedAt != nil {
		lines = append(lines, field("Published", d.PublishedAt.String()))
	}
	lines = append(lines, field("Crawled", d.CrawledAt.String()))
	if d.URL != "" {
		lines = append(lines, field("URL", d.URL))
	}
	if len(d.Tags) > 0 {
		lines = append(lines, field("Tags", v.styles.Tag.Render(list.TagNames(d.Tags))))
	}
	if len(d.Entities) > 0 {
		names := make([]string, 0, len(d.Entities))
		for _, e := range d.Entities {
			names = append(names, fmt.Sprintf("%s (%s)", e.Name, e.Type))
		}
		lines = append(lines, field("Entities", strings.Join(names, ", ")))
	}

	lines = append(lines, "", v.styles.Subtitle.Render("Summary"))
	if d.Summary == "" {
		lines = append(lines, v.styles.Muted.Render("No summary yet. Press g to generate one."))
	} else {
		lines = append(lines, v.wrap(d.Summary)...)
	}

	if d.Explanation != "" {
		lines = append(lines, "", v.styles.Subtitle.Render("Explanation"))
		lines = append(lines, v.wrap(d.Explanation)...)
	}

	sections := d.OrderedSections()
	if len(sections) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render(fmt.Sprintf("Sections (%d)", len(sections))))
		for _, s := range sections {
			lines = append(lines, "")
			if s.Heading != "" {
				lines = append(lines, v.styles.Heading.Render(s.Heading))
			}
			lines = append(lines, v.wrap(s.Text)...)
		}
	}

	return lines
}

func field(label, value string) string {
	return fmt.Sprintf("%-11s %s", label+":", value)
}

// wrap word-wraps text to the view width.
func (v *View) wrap(text string) []string {
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
	return strings.Split(wrapped, "\n")
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.doc != nil && v.doc.Title != "" {
		title = v.doc.Title
	}
	b.WriteString(v.styles.Title.Render(list.Truncate(title, max(v.width-4, 10))))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 10), 60)))
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Warning.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
	case v.doc == nil:
		b.WriteString(v.styles.Muted.Render("No document loaded."))
	default:
		lines := v.buildContent()
		end := v.scrollOffset + v.visibleLines()
		if end > len(lines) {
			end = len(lines)
		}
		b.WriteString(strings.Join(lines[v.scrollOffset:end], "\n"))
		if len(lines) > v.visibleLines() {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%d-%d of %d lines]", v.scrollOffset+1, end, len(lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.DocumentHelp())))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if v.scrollOffset > v.maxScrollOffset() {
		v.scrollOffset = v.maxScrollOffset()
	}
}

// Document returns the loaded document.
func (v *View) Document() *domain.Document {
	return v.doc
}

// Back returns the view esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// Regenerating reports whether a summary regeneration is in flight.
func (v *View) Regenerating() bool {
	return v.regenerating
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
