// Package list holds the scrolling lists used by the TUI views.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/styles"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// linesPerHit is the height of one rendered hit: title, source and tags, snippet.
const linesPerHit = 3

// ResultList shows search hits numbered in the order the backend ranked them.
type ResultList struct {
	styles *styles.Styles
	hits   []domain.SearchResult
	cursor int
	width  int
	height int
}

// NewResultList returns an empty list. A nil s uses the default styles.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// Update moves the cursor on up/down and k/j.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			r.Move(-1)
		case "down", "j":
			r.Move(1)
		}
	}
	return r, nil
}

// Move shifts the cursor by delta, stopping at either end.
func (r *ResultList) Move(delta int) {
	if len(r.hits) == 0 {
		return
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.hits)-1)
}

// Select puts the cursor on hit i. It reports false if i is out of range.
func (r *ResultList) Select(i int) bool {
	if i < 0 || i >= len(r.hits) {
		return false
	}
	r.cursor = i
	return true
}

// Cursor is the index of the highlighted hit.
func (r *ResultList) Cursor() int { return r.cursor }

// SetResults replaces the hits and moves the cursor to the top.
func (r *ResultList) SetResults(hits []domain.SearchResult) {
	r.hits = hits
	r.cursor = 0
}

// Results returns the hits as given.
func (r *ResultList) Results() []domain.SearchResult { return r.hits }

// SelectedResult is the highlighted hit, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.hits) == 0 {
		return nil
	}
	return &r.hits[r.cursor]
}

// IsEmpty reports whether there are no hits.
func (r *ResultList) IsEmpty() bool { return len(r.hits) == 0 }

// SetDimensions sets the area the list may draw in.
func (r *ResultList) SetDimensions(width, height int) {
	r.width, r.height = width, height
}

// View renders the hits visible around the cursor.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No results")
	}

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.hits))))
	b.WriteString("\n")

	start, end := Window(r.cursor, len(r.hits), (r.height-4)/linesPerHit)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.renderHit(i))
	}
	return b.String()
}

func (r *ResultList) renderHit(i int) string {
	hit := &r.hits[i]

	title := hit.DocumentTitle
	if title == "" {
		title = "(Untitled)"
	}
	head := fmt.Sprintf("%d. %s", i+1, Truncate(title, max(r.width-14, 10)))
	score := fmt.Sprintf("%.2f", hit.Score)

	var line string
	if i == r.cursor {
		line = r.styles.Selected.Render("> " + head + "  " + score)
	} else {
		line = r.styles.Normal.Render("  "+head+"  ") + r.styles.Muted.Render(score)
	}

	var meta []string
	if hit.Source != nil && hit.Source.Name != "" {
		meta = append(meta, r.styles.Subtitle.Render(hit.Source.Name))
	}
	if len(hit.Tags) > 0 {
		meta = append(meta, r.styles.Tag.Render(TagNames(hit.Tags)))
	}

	snippet := Truncate(strings.Join(strings.Fields(hit.Snippet), " "), max(r.width-6, 20))

	return line + "\n    " + strings.Join(meta, "  ") + "\n" + r.styles.Muted.Render("    "+snippet)
}
