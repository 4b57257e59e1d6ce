package ui

import (
	"testing"
	"time"

	"communityboard/internal/api"
	"communityboard/internal/apitest"
	"communityboard/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newTestDeps starts a seeded fake backend and returns deps pointing at it.
// token seeds the in-memory session ("" for signed out).
func newTestDeps(t *testing.T, token string) (Deps, *apitest.Backend) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	b := apitest.NewBackend(logger)
	apitest.Seed(b)
	srv := apitest.Start(t, b)
	client, err := api.New(srv.URL, api.WithLogger(logger))
	require.NoError(t, err)
	return Deps{
		API:     client,
		Session: session.New(token),
		Logger:  logger,
		Timeout: 5 * time.Second,
	}, b
}

// isAppMsg reports whether msg is one the client defines. Everything else
// (spinner ticks, cursor blinks, quit) is timer or runtime driven and is not
// replayed by the test drivers.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case SwitchTabMsg, RefreshMsg, ShowLoginMsg, RedirectToLoginMsg, LoginMsg,
		ShowLogoutMsg, LogoutMsg, DismissModalMsg, AnnouncementPostedMsg,
		statsLoadedMsg, announcementsLoadedMsg, announcementPostedMsg,
		profileLoadedMsg, profileSavedMsg:
		return true
	}
	return false
}

// execute runs cmd and returns the client messages it produced, flattening
// batches.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, execute(c)...)
		}
		return out
	default:
		if isAppMsg(msg) {
			return []tea.Msg{msg}
		}
		return nil
	}
}

// runView feeds the results of cmd back into v until nothing is left.
func runView(v View, cmd tea.Cmd) {
	pending := execute(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		_, next := v.Update(msg)
		pending = append(pending, execute(next)...)
	}
}

// runApp is runView for the root model.
func runApp(m tea.Model, cmd tea.Cmd) {
	pending := execute(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		_, next := m.Update(msg)
		pending = append(pending, execute(next)...)
	}
}

// press sends a key to the app and runs whatever it triggers.
func press(m tea.Model, key string) {
	_, cmd := m.Update(keyMsg(key))
	runApp(m, cmd)
}

// typeText sends s as typed runes. The returned cursor-blink cmd is
// timer driven and dropped.
func typeText(m tea.Model, s string) {
	m.Update(keyMsg(s))
}

// typeInto is typeText for a single view.
func typeInto(v View, s string) {
	v.Update(keyMsg(s))
}
