package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each View represents a screen or major UI region with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Capturer is implemented by views with text fields. While Capturing reports
// true, keys go straight to the view and app-level single-key bindings
// (q, 1-4, r, SPC) are skipped.
type Capturer interface {
	Capturing() bool
}

func capturing(v View) bool {
	c, ok := v.(Capturer)
	return ok && c.Capturing()
}
