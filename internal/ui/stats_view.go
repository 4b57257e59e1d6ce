package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"communityboard/internal/model"
	"communityboard/internal/ui/textutil"
	"communityboard/internal/viewstate"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statsTitle       = "Community Demographics Dashboard"
	statsLoadingText = "Loading dashboard..."
	statsFailText    = "Failed to load dashboard statistics"

	defaultBarWidth = 40
	timeLayout      = "2006-01-02 15:04:05"
)

// StatsView is the admin dashboard: three demographic counts, their
// distribution as a proportional bar, the total and the server timestamp.
type StatsView struct {
	deps    Deps
	fetch   *viewstate.Fetcher[model.AdminStats]
	spinner spinner.Model
	width   int
}

// Ensure StatsView implements View.
var _ View = (*StatsView)(nil)

// NewStatsView creates the dashboard. Nothing is fetched until Init.
func NewStatsView(deps Deps) *StatsView {
	return &StatsView{
		deps:    deps,
		fetch:   viewstate.NewFetcher[model.AdminStats]("stats", statsFailText, deps.logger()),
		spinner: newSpinner(),
	}
}

// State returns the current view state.
func (v *StatsView) State() viewstate.State[model.AdminStats] {
	return v.fetch.State()
}

// Init implements View. It issues the single read for this activation.
func (v *StatsView) Init() tea.Cmd {
	return v.load()
}

func (v *StatsView) load() tea.Cmd {
	if v.fetch.InFlight() {
		return nil
	}
	gen := v.fetch.Begin()
	return tea.Batch(v.spinner.Tick, fetchStatsCmd(v.deps, gen))
}

// Update implements View.
func (v *StatsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		v.fetch.Resolve(msg.Gen, msg.Stats, msg.Err)
		return v, nil
	case RefreshMsg:
		return v, v.load()
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil
	case spinner.TickMsg:
		if v.fetch.State().IsLoading() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

// View implements View.
func (v *StatsView) View() string {
	state := v.fetch.State()
	switch state.Phase() {
	case viewstate.PhaseLoading:
		return v.spinner.View() + " " + statsLoadingText
	case viewstate.PhaseError:
		return Styles.Error.Render(state.Message()) + "\n" + Styles.Hint.Render("Press r to retry")
	}
	stats, ok := state.Payload()
	if !ok {
		return ""
	}
	return renderStats(stats, v.barWidth())
}

func (v *StatsView) barWidth() int {
	if v.width > 0 && v.width-4 < defaultBarWidth {
		return max(v.width-4, 10)
	}
	return defaultBarWidth
}

func renderStats(stats model.AdminStats, barWidth int) string {
	slices := stats.Slices()

	var b strings.Builder
	b.WriteString(Styles.Title.Render(statsTitle) + "\n\n")

	cards := make([]string, len(slices))
	for i, s := range slices {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Bold(true).Render(s.Name)
		cards[i] = Styles.Card.Render(label + "\n" + strconv.Itoa(s.Value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	b.WriteString(Styles.Section.Render("Population Distribution") + "\n")
	values := make([]int, len(slices))
	for i, s := range slices {
		values[i] = s.Value
	}
	widths := barWidths(values, barWidth)
	var bar strings.Builder
	for i, s := range slices {
		if widths[i] == 0 {
			continue
		}
		bar.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Color)).
			Render(strings.Repeat("█", widths[i])))
	}
	if bar.Len() == 0 {
		bar.WriteString(Styles.Muted.Render(strings.Repeat("░", barWidth)))
	}
	b.WriteString(bar.String() + "\n")
	for _, s := range slices {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		b.WriteString(fmt.Sprintf("%s %s %s  (%d%%)\n", dot,
			textutil.PadRightVisual(s.Name, 9),
			textutil.PadLeftVisual(strconv.Itoa(s.Value), 6),
			s.Percent))
	}

	b.WriteString("\n" + fmt.Sprintf("Total Community Members: %d", stats.Total) + "\n")
	b.WriteString(Styles.Muted.Render("Last updated: " + formatWhen(stats.Timestamp)))
	return b.String()
}

// formatWhen renders a server timestamp in local time.
func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(timeLayout)
}

// barWidths splits width cells among values in proportion. Boundaries are
// rounded cumulatively so the widths always sum to width (or to 0 when every
// value is 0).
func barWidths(values []int, width int) []int {
	out := make([]int, len(values))
	sum := 0
	for _, v := range values {
		sum += max(v, 0)
	}
	if sum == 0 || width <= 0 {
		return out
	}
	cum, prev := 0, 0
	for i, v := range values {
		cum += max(v, 0)
		edge := int(math.Round(float64(cum) / float64(sum) * float64(width)))
		out[i] = edge - prev
		prev = edge
	}
	return out
}
