// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#1FA37A"), // Green
		Secondary:  lipgloss.Color("#5AB0E8"), // Blue
		Background: lipgloss.Color("#16181D"),
		Foreground: lipgloss.Color("#E4E6EB"),
		Muted:      lipgloss.Color("#7A808C"),
		Success:    lipgloss.Color("#8BD17C"),
		Warning:    lipgloss.Color("#F2C94C"),
		Error:      lipgloss.Color("#F0616D"),
		Border:     lipgloss.Color("#3A3F4B"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Tag renders a document tag chip.
	Tag lipgloss.Style

	// Heading renders section headings in the document view.
	Heading lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Italic(true),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Foreground),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// CrawlStatus returns the style for a crawl job status.
func (s *Styles) CrawlStatus(status domain.CrawlStatus) lipgloss.Style {
	switch status {
	case domain.CrawlSuccess:
		return s.Success
	case domain.CrawlFailed:
		return s.Error
	case domain.CrawlRunning:
		return s.Subtitle
	case domain.CrawlPending:
		return s.Warning
	default:
		return s.Muted
	}
}

// Enabled returns the label and style for a source's enabled flag.
func (s *Styles) Enabled(enabled bool) string {
	if enabled {
		return s.Success.Render("enabled")
	}
	return s.Muted.Render("disabled")
}
