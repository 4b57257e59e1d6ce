package ui

import (
	"context"
	"time"

	"communityboard/internal/model"
	"communityboard/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds each API call when Deps.Timeout is unset.
const DefaultRequestTimeout = 15 * time.Second

// API is the backend surface the views call. *api.Client implements it.
type API interface {
	GetAdminStats(ctx context.Context) (model.AdminStats, error)
	GetAnnouncements(ctx context.Context) ([]model.Announcement, error)
	PostAnnouncement(ctx context.Context, in model.NewAnnouncement) (model.Announcement, error)
	GetProfile(ctx context.Context, id string) (model.ProfileRecord, error)
	UpdateProfile(ctx context.Context, id string, rec model.ProfileRecord) (model.ProfileRecord, error)
}

// Deps is what every view is constructed with.
type Deps struct {
	API     API
	Session *session.Session
	Logger  *zap.Logger
	Timeout time.Duration
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) sessionToken() (string, bool) {
	if d.Session == nil {
		return "", false
	}
	return d.Session.Token()
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// fetchStatsCmd loads the dashboard statistics.
func fetchStatsCmd(d Deps, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		stats, err := d.API.GetAdminStats(ctx)
		return statsLoadedMsg{Gen: gen, Stats: stats, Err: err}
	}
}

// fetchAnnouncementsCmd loads the announcement list.
func fetchAnnouncementsCmd(d Deps, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		list, err := d.API.GetAnnouncements(ctx)
		return announcementsLoadedMsg{Gen: gen, Announcements: list, Err: err}
	}
}

// postAnnouncementCmd submits a new announcement.
func postAnnouncementCmd(d Deps, gen uint64, in model.NewAnnouncement) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		created, err := d.API.PostAnnouncement(ctx, in)
		return announcementPostedMsg{Gen: gen, Announcement: created, Err: err}
	}
}

// fetchProfileCmd loads the profile of user id.
func fetchProfileCmd(d Deps, gen uint64, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		rec, err := d.API.GetProfile(ctx, id)
		return profileLoadedMsg{Gen: gen, Record: rec, Err: err}
	}
}

// saveProfileCmd writes rec as the profile of user id.
func saveProfileCmd(d Deps, gen uint64, id string, rec model.ProfileRecord) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		_, err := d.API.UpdateProfile(ctx, id, rec)
		return profileSavedMsg{Gen: gen, Sent: rec, Err: err}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
