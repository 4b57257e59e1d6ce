package ui

import (
	"strings"

	"communityboard/internal/model"
	"communityboard/internal/ui/textutil"
	"communityboard/internal/viewstate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

const (
	announcementsTitle       = "Announcements"
	announcementsLoadingText = "Loading announcements..."
	announcementsFailText    = "Failed to load announcements."
	announcementsEmptyText   = "No announcements available."

	defaultWrap   = 80
	markdownStyle = "dark"
)

// AnnouncementsView lists announcements in the order the server returns
// them. Content is rendered as markdown and scrolls in a viewport.
type AnnouncementsView struct {
	deps     Deps
	fetch    *viewstate.Fetcher[[]model.Announcement]
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
}

// Ensure AnnouncementsView implements View.
var _ View = (*AnnouncementsView)(nil)

// NewAnnouncementsView creates the announcement list. Nothing is fetched until Init.
func NewAnnouncementsView(deps Deps) *AnnouncementsView {
	return &AnnouncementsView{
		deps:     deps,
		fetch:    viewstate.NewFetcher[[]model.Announcement]("announcements", announcementsFailText, deps.logger()),
		spinner:  newSpinner(),
		viewport: viewport.New(defaultWrap, 20),
		renderer: newMarkdownRenderer(markdownStyle, defaultWrap, deps.logger()),
	}
}

// newMarkdownRenderer returns nil if glamour cannot be set up; content is
// then shown as plain text.
func newMarkdownRenderer(style string, wrap int, logger *zap.Logger) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable, showing plain text",
			zap.String("style", style),
			zap.Int("wrap", wrap),
			zap.Error(err))
		return nil
	}
	return r
}

// State returns the current view state.
func (v *AnnouncementsView) State() viewstate.State[[]model.Announcement] {
	return v.fetch.State()
}

// Init implements View.
func (v *AnnouncementsView) Init() tea.Cmd {
	return v.load()
}

func (v *AnnouncementsView) load() tea.Cmd {
	if v.fetch.InFlight() {
		return nil
	}
	gen := v.fetch.Begin()
	return tea.Batch(v.spinner.Tick, fetchAnnouncementsCmd(v.deps, gen))
}

// Update implements View.
func (v *AnnouncementsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case announcementsLoadedMsg:
		if v.fetch.Resolve(msg.Gen, msg.Announcements, msg.Err) {
			v.refreshContent()
			v.viewport.GotoTop()
		}
		return v, nil
	case RefreshMsg, AnnouncementPostedMsg:
		return v, v.load()
	case tea.WindowSizeMsg:
		v.viewport.Width = msg.Width
		v.viewport.Height = max(msg.Height-6, 3) // tab bar, title and footer
		if wrap := msg.Width - 4; wrap > 20 {
			v.renderer = newMarkdownRenderer(markdownStyle, wrap, v.deps.logger())
		}
		v.refreshContent()
		return v, nil
	case spinner.TickMsg:
		if v.fetch.State().IsLoading() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *AnnouncementsView) refreshContent() {
	list, ok := v.fetch.State().Payload()
	if !ok {
		return
	}
	v.viewport.SetContent(v.renderList(list))
}

// View implements View.
func (v *AnnouncementsView) View() string {
	state := v.fetch.State()
	switch state.Phase() {
	case viewstate.PhaseLoading:
		return v.spinner.View() + " " + announcementsLoadingText
	case viewstate.PhaseError:
		return Styles.Error.Render(state.Message()) + "\n" + Styles.Hint.Render("Press r to retry")
	}
	return Styles.Title.Render(announcementsTitle) + "\n\n" + v.viewport.View()
}

func (v *AnnouncementsView) renderList(list []model.Announcement) string {
	if len(list) == 0 {
		return Styles.Empty.Render(announcementsEmptyText)
	}
	var b strings.Builder
	for i, a := range list {
		if i > 0 {
			b.WriteString(Styles.Muted.Render(strings.Repeat("─", 20)) + "\n")
		}
		b.WriteString(Styles.Selected.Render(textutil.Truncate(a.Title, v.viewport.Width)) + "\n")
		b.WriteString(v.renderContent(a.Content) + "\n")
		b.WriteString(Styles.Muted.Render("Posted on: "+formatWhen(a.CreatedAt)) + "\n")
	}
	return b.String()
}

// renderContent renders markdown; plain text is used if the renderer is
// unavailable or fails.
func (v *AnnouncementsView) renderContent(content string) string {
	if v.renderer == nil || strings.TrimSpace(content) == "" {
		return content
	}
	out, err := v.renderer.Render(content)
	if err != nil {
		v.deps.logger().Warn("render announcement markdown", zap.Error(err))
		return content
	}
	return strings.Trim(out, "\n")
}
