package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModal asks for the user id that identifies the session.
type LoginModal struct {
	input  textinput.Model
	reason string
	err    string
}

// Ensure LoginModal implements View.
var _ View = (*LoginModal)(nil)

// NewLoginModal creates a login prompt. reason, when set, explains why the
// prompt appeared (e.g. "Please login first").
func NewLoginModal(reason string) *LoginModal {
	ti := textinput.New()
	ti.Placeholder = "user-id"
	ti.Width = 40
	ti.Focus()
	return &LoginModal{input: ti, reason: reason}
}

// Init implements View.
func (m *LoginModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *LoginModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, msgCmd(DismissModalMsg{})
		case "enter":
			token := strings.TrimSpace(m.input.Value())
			if token == "" {
				m.err = "Enter your user id"
				return m, nil
			}
			return m, msgCmd(LoginMsg{Token: token})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *LoginModal) View() string {
	content := Styles.Title.Render("Login") + "\n\n"
	if m.reason != "" {
		content += Styles.Error.Render(m.reason) + "\n\n"
	}
	content += m.input.View() + "\n"
	if m.err != "" {
		content += Styles.Error.Render(m.err) + "\n"
	}
	content += "\n" + Styles.Hint.Render("Enter: login  Esc: cancel")
	return Styles.Box.Render(content)
}
