// Package sources provides the crawl source admin view for the TUI.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/components/list"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/messages"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/tui/styles"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
)

// ErrNoAdminService indicates that no admin service was provided.
var ErrNoAdminService = errors.New("admin service is not available")

// View lists crawl sources with their latest job, and toggles or crawls them.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	adminService driving.AdminService
	ctx          context.Context

	overview *driving.SourcesOverview
	selected int
	loading  bool
	busy     bool
	notice   string
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, km *keymap.KeyMap, adminService driving.AdminService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		adminService: adminService,
		ctx:          context.Background(),
		overview:     &driving.SourcesOverview{},
		width:        80,
		height:       24,
	}
}

// WithContext sets the context used for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads sources and jobs.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.notice = ""
	svc := v.adminService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SourcesLoaded{Err: ErrNoAdminService}
		}
		overview, err := svc.SourcesOverview(ctx)
		return messages.SourcesLoaded{Overview: overview, Err: err}
	}
}

func (v *View) toggle(src domain.DocumentSource) tea.Cmd {
	v.busy = true
	svc := v.adminService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SourceToggled{Err: ErrNoAdminService}
		}
		updated, err := svc.ToggleSource(ctx, src.ID, !src.IsEnabled)
		return messages.SourceToggled{Source: updated, Err: err}
	}
}

func (v *View) crawl(src domain.DocumentSource) tea.Cmd {
	v.busy = true
	svc := v.adminService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.CrawlTriggered{Err: ErrNoAdminService}
		}
		job, err := svc.TriggerCrawl(ctx, src.ID)
		return messages.CrawlTriggered{Job: job, Err: err}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourcesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.overview = msg.Overview
		if v.overview == nil {
			v.overview = &driving.SourcesOverview{}
		}
		if v.selected >= len(v.overview.Sources) {
			v.selected = max(len(v.overview.Sources)-1, 0)
		}
		return v, nil

	case messages.SourceToggled:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Source != nil {
			v.replace(*msg.Source)
			verb := "Disabled"
			if msg.Source.IsEnabled {
				verb = "Enabled"
			}
			v.notice = fmt.Sprintf("%s source %d (%s).", verb, msg.Source.ID, msg.Source.Name)
		}
		return v, nil

	case messages.CrawlTriggered:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Job != nil {
			v.overview.Jobs = append(v.overview.Jobs, *msg.Job)
			v.notice = fmt.Sprintf("Queued crawl job %d for source %d.", msg.Job.ID, msg.Job.SourceID)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.busy = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// replace swaps in an updated source by ID.
func (v *View) replace(src domain.DocumentSource) {
	for i := range v.overview.Sources {
		if v.overview.Sources[i].ID == src.ID {
			v.overview.Sources[i] = src
			return
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
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.overview.Sources)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if src := v.SelectedSource(); src != nil && !v.busy {
			return v, v.toggle(*src)
		}
	case keymap.Matches(k, v.keymap.Crawl):
		if src := v.SelectedSource(); src != nil && !v.busy {
			return v, v.crawl(*src)
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.load()
	}
	return v, nil
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sources"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		if errors.Is(v.err, domain.ErrForbidden) || errors.Is(v.err, ErrNoAdminService) {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render("Source management needs an admin account."))
		}
		b.WriteString("\n\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading sources..."))
		b.WriteString("\n")
	case len(v.overview.Sources) == 0:
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("No sources configured."))
			b.WriteString("\n")
		}
	default:
		for i := range v.overview.Sources {
			b.WriteString(v.renderSource(i, &v.overview.Sources[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.SourcesHelp())))

	return b.String()
}

func (v *View) renderSource(index int, src *domain.DocumentSource) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := list.Truncate(src.Name, max(v.width/3, 10))
	var line string
	if index == v.selected {
		line = v.styles.Selected.Render(fmt.Sprintf("%s%d. %s", indicator, src.ID, name))
	} else {
		line = v.styles.Normal.Render(fmt.Sprintf("%s%d. %s", indicator, src.ID, name))
	}
	line += "  " + v.styles.Enabled(src.IsEnabled)

	scraper := string(src.ScraperType)
	if scraper == "" {
		scraper = "-"
	}
	detail := fmt.Sprintf("    %s  scraper: %s  last crawled: ", src.BaseURL, scraper)
	if src.LastCrawledAt != nil {
		detail += src.LastCrawledAt.String()
	} else {
		detail += "never"
	}
	detail = v.styles.Muted.Render(detail)

	if job := v.overview.LatestJob(src.ID); job != nil {
		detail += "  " + v.styles.CrawlStatus(job.Status).Render(fmt.Sprintf("job %d %s", job.ID, job.Status))
		if job.ErrorMessage != "" {
			detail += " " + v.styles.Error.Render(list.Truncate(job.ErrorMessage, 40))
		}
	}

	return line + "\n" + detail
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sources returns the loaded sources.
func (v *View) Sources() []domain.DocumentSource {
	return v.overview.Sources
}

// SelectedIndex returns the currently selected source index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedSource returns the currently selected source.
func (v *View) SelectedSource() *domain.DocumentSource {
	if v.selected < 0 || v.selected >= len(v.overview.Sources) {
		return nil
	}
	return &v.overview.Sources[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
