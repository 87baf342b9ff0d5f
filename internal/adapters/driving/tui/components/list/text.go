package list

import (
	"strings"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Truncate shortens s to at most n runes, marking the cut with "...".
// Counting runes keeps Bangla titles intact.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// TagNames joins tag names for display.
func TagNames(tags []domain.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		name := t.Name
		if name == "" {
			name = t.Slug
		}
		names = append(names, "#"+name)
	}
	return strings.Join(names, " ")
}

// Window returns the [start, end) range of a list of n rows that keeps
// selected visible when only size rows fit.
func Window(selected, n, size int) (int, int) {
	if size < 1 {
		size = 1
	}
	start := 0
	if selected >= size {
		start = selected - size + 1
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}
