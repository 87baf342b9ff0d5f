// Package status renders the one-line bar under the search view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/styles"
)

// State is what the search view is doing.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar shows the search state on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	state State
	query string
	hits  int
	err   string
}

// NewBar returns a bar in the ready state. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80, state: StateReady}
}

// Searching marks query as in flight.
func (b *Bar) Searching(query string) {
	b.state, b.query, b.hits, b.err = StateSearching, query, 0, ""
}

// Results records that query returned n hits.
func (b *Bar) Results(query string, n int) {
	b.state, b.query, b.hits, b.err = StateResults, query, n, ""
}

// Failed records a failed search. The last query is kept.
func (b *Bar) Failed(err error) {
	b.state, b.hits = StateError, 0
	b.err = ""
	if err != nil {
		b.err = err.Error()
	}
}

// Reset returns the bar to ready.
func (b *Bar) Reset() {
	b.state, b.query, b.hits, b.err = StateReady, "", 0, ""
}

// State returns the current state.
func (b *Bar) State() State { return b.state }

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) { b.width = width }

// Text is the left-hand status text without styling.
func (b *Bar) Text() string {
	switch b.state {
	case StateSearching:
		return fmt.Sprintf("Searching for %q...", b.query)
	case StateError:
		if b.err == "" {
			return "Search failed"
		}
		return "Search failed: " + b.err
	case StateResults:
		switch b.hits {
		case 0:
			return fmt.Sprintf("No documents match %q", b.query)
		case 1:
			return fmt.Sprintf("1 document for %q", b.query)
		default:
			return fmt.Sprintf("%d documents for %q", b.hits, b.query)
		}
	default:
		return "Type a question in Bangla or English"
	}
}

// View renders the bar at its width.
func (b *Bar) View() string {
	var left string
	switch b.state {
	case StateError:
		left = b.styles.Error.Render(b.Text())
	case StateResults:
		if b.hits > 0 {
			left = b.styles.Normal.Render(b.Text())
			break
		}
		fallthrough
	default:
		left = b.styles.Muted.Render(b.Text())
	}

	right := b.styles.Muted.Render(hints(b.bindings()))
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) bindings() []key.Binding {
	if b.state == StateResults && b.hits > 0 {
		return b.keymap.ResultsHelp()
	}
	return b.keymap.ShortHelp()
}

func hints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}
