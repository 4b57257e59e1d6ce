package ui

import (
	"fmt"

	"communityboard/internal/profile"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (a *appModelAdapter) setStatus(text string, isError bool) {
	a.Status = text
	a.StatusIsError = isError
}

// handleKey routes a key press: ctrl+c always quits, an open modal takes
// every other key, then app keybinds unless the active view is capturing
// text, then the active view.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if cmd, ok := a.Modals.Route(msg); ok {
		return a, cmd
	}
	if a.KeyHandler != nil && !capturing(a.view(a.Active)) {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
	}
	return a, a.updateView(a.Active, msg)
}

// handleWindowSize forwards the space below the tab bar to every view.
func (a *appModelAdapter) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width, a.height = msg.Width, msg.Height
	inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-chromeHeight, 1)}
	var cmds []tea.Cmd
	for _, t := range Tabs {
		cmds = append(cmds, a.updateView(t, inner))
	}
	return a, tea.Batch(cmds...)
}

// handleShowLogin opens the login prompt on top of the current view.
func (a *appModelAdapter) handleShowLogin(reason string) (tea.Model, tea.Cmd) {
	if a.Modals.TopIs(ModalLogin) {
		return a, nil
	}
	return a, a.Modals.Open(ModalLogin, NewLoginModal(reason))
}

// handleRedirect leaves a view that needs an identity token and opens the
// login prompt. The view is unmounted so it checks the session again when
// next activated.
func (a *appModelAdapter) handleRedirect(msg RedirectToLoginMsg) (tea.Model, tea.Cmd) {
	a.unmount(msg.From)
	var cmds []tea.Cmd
	if a.Active == msg.From {
		cmds = append(cmds, a.activate(TabStats))
	}
	_, cmd := a.handleShowLogin(msg.Reason)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleLogin stores the token and opens the profile for it.
func (a *appModelAdapter) handleLogin(msg LoginMsg) (tea.Model, tea.Cmd) {
	a.Modals.CloseKind(ModalLogin)
	if a.Deps.Session == nil {
		a.setStatus("Login unavailable: no session", true)
		return a, nil
	}
	if err := a.Deps.Session.Login(msg.Token); err != nil {
		a.Deps.logger().Error("login failed", zap.Error(err))
		a.setStatus(fmt.Sprintf("Login: %v", err), true)
		return a, nil
	}
	a.setStatus("Logged in as "+msg.Token, false)
	a.Profile.Reset()
	a.unmount(TabProfile)
	return a, a.activate(TabProfile)
}

// handleShowLogout asks before logging out. Without a session there is
// nothing to confirm.
func (a *appModelAdapter) handleShowLogout() (tea.Model, tea.Cmd) {
	tok, ok := a.Deps.sessionToken()
	if !ok {
		a.setStatus("Not logged in", true)
		return a, nil
	}
	unsaved := a.Profile.EditorState() == profile.StateEditing
	return a, a.Modals.Open(ModalConfirmLogout, NewLogoutConfirmModal(tok, unsaved))
}

// handleLogout clears the session and drops everything the profile view
// loaded. If the profile is showing it is re-activated, which redirects to
// the login prompt.
func (a *appModelAdapter) handleLogout() (tea.Model, tea.Cmd) {
	a.Modals.CloseKind(ModalConfirmLogout)
	if a.Deps.Session != nil {
		if err := a.Deps.Session.Logout(); err != nil {
			a.Deps.logger().Error("logout failed", zap.Error(err))
			a.setStatus(fmt.Sprintf("Logout: %v", err), true)
			return a, nil
		}
	}
	a.setStatus("Logged out", false)
	a.Profile.Reset()
	a.unmount(TabProfile)
	if a.Active == TabProfile {
		return a, a.activate(TabProfile)
	}
	return a, nil
}
