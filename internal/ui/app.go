package ui

import (
	"strconv"
	"strings"

	"communityboard/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the number of lines the tab bar and status line take.
const chromeHeight = 4

// AppModel is the root model. It hosts one view per tab, mounts each on
// first activation and routes request results back to the view that issued
// them, whichever tab is active when they arrive.
type AppModel struct {
	Active        Tab
	Stats         *StatsView
	Announcements *AnnouncementsView
	Post          *PostView
	Profile       *ProfileView
	Modals        ModalStack
	KeyHandler    *KeyHandler
	Deps          Deps
	Status        string
	StatusIsError bool

	mounted map[Tab]bool
	width   int
	height  int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model. No view fetches anything
// until it is activated.
func NewAppModel(deps Deps) *AppModel {
	return &AppModel{
		Active:        TabStats,
		Stats:         NewStatsView(deps),
		Announcements: NewAnnouncementsView(deps),
		Post:          NewPostView(deps),
		Profile:       NewProfileView(deps),
		KeyHandler:    NewKeyHandler(newKeybindRegistry()),
		Deps:          deps,
		mounted:       make(map[Tab]bool),
	}
}

func newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	refresh := msgCmd(RefreshMsg{})
	fetching := []Tab{TabStats, TabAnnouncements, TabProfile}

	reg.Bind("q", tea.Quit, "Quit")
	reg.Bind("SPC q", tea.Quit, "Quit")
	for i, t := range Tabs {
		reg.Bind(strconv.Itoa(i+1), msgCmd(SwitchTabMsg{Tab: t}), t.String())
	}
	reg.Bind("SPC t d", msgCmd(SwitchTabMsg{Tab: TabStats}), "Dashboard")
	reg.Bind("SPC t a", msgCmd(SwitchTabMsg{Tab: TabAnnouncements}), "Announcements")
	reg.Bind("SPC t p", msgCmd(SwitchTabMsg{Tab: TabPost}), "Post")
	reg.Bind("SPC t u", msgCmd(SwitchTabMsg{Tab: TabProfile}), "Profile")
	reg.Bind("r", refresh, "Refresh", fetching...)
	reg.Bind("SPC r", refresh, "Refresh", fetching...)
	reg.Bind("SPC s i", msgCmd(ShowLoginMsg{}), "Login")
	reg.Bind("SPC s o", msgCmd(ShowLogoutMsg{}), "Logout")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Mounted reports whether the tab's view has been initialized.
func (m *AppModel) Mounted(t Tab) bool {
	return m.mounted[t]
}

func (m *AppModel) view(t Tab) View {
	switch t {
	case TabAnnouncements:
		return m.Announcements
	case TabPost:
		return m.Post
	case TabProfile:
		return m.Profile
	default:
		return m.Stats
	}
}

// activate makes t the active tab and mounts its view on first use.
func (m *AppModel) activate(t Tab) tea.Cmd {
	m.Active = t
	if m.mounted[t] {
		return nil
	}
	m.mounted[t] = true
	return m.view(t).Init()
}

// unmount makes the next activation of t run Init again.
func (m *AppModel) unmount(t Tab) {
	delete(m.mounted, t)
}

// updateView passes msg to the view of tab t. Views are pointers and update
// in place, so the returned View is not stored back.
func (m *AppModel) updateView(t Tab, msg tea.Msg) tea.Cmd {
	_, cmd := m.view(t).Update(msg)
	return cmd
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.activate(a.Active)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		return a.handleWindowSize(msg)
	case SwitchTabMsg:
		a.Status = ""
		return a, a.activate(msg.Tab)
	case RefreshMsg:
		return a, a.updateView(a.Active, msg)
	case ShowLoginMsg:
		return a.handleShowLogin(msg.Reason)
	case RedirectToLoginMsg:
		return a.handleRedirect(msg)
	case LoginMsg:
		return a.handleLogin(msg)
	case ShowLogoutMsg:
		return a.handleShowLogout()
	case LogoutMsg:
		return a.handleLogout()
	case DismissModalMsg:
		a.Modals.Close()
		return a, nil
	case AnnouncementPostedMsg:
		a.setStatus("Announcement posted", false)
		if a.mounted[TabAnnouncements] {
			return a, a.updateView(TabAnnouncements, msg)
		}
		return a, nil

	// Request results go to the view that issued them.
	case statsLoadedMsg:
		return a, a.updateView(TabStats, msg)
	case announcementsLoadedMsg:
		return a, a.updateView(TabAnnouncements, msg)
	case announcementPostedMsg:
		return a, a.updateView(TabPost, msg)
	case profileLoadedMsg, profileSavedMsg:
		return a, a.updateView(TabProfile, msg)
	}

	// Spinner ticks and cursor blinks carry their own ids; every mounted
	// view and the top modal get them and ignore the ones they don't own.
	var cmds []tea.Cmd
	for _, t := range Tabs {
		if a.mounted[t] {
			cmds = append(cmds, a.updateView(t, msg))
		}
	}
	if cmd, ok := a.Modals.Route(msg); ok {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabs() + "\n\n")
	if top, ok := a.Modals.Top(); ok {
		b.WriteString(top.View.View())
	} else {
		b.WriteString(a.view(a.Active).View())
	}
	if a.Status != "" {
		style := Styles.Status
		if a.StatusIsError {
			style = Styles.Error
		}
		b.WriteString("\n\n" + style.Render(a.Status))
	}
	if a.KeyHandler != nil && a.KeyHandler.Waiting() {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Active))
	}
	return b.String()
}

func (a *appModelAdapter) renderTabs() string {
	parts := make([]string, len(Tabs))
	for i, t := range Tabs {
		label := strconv.Itoa(i+1) + " " + t.String()
		if t == a.Active {
			parts[i] = Styles.TabActive.Render(label)
		} else {
			parts[i] = Styles.Tab.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if tok, ok := a.Deps.sessionToken(); ok {
		bar += "  " + Styles.Muted.Render("signed in as "+textutil.Truncate(tok, 24))
	}
	return bar
}
