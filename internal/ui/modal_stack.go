package ui

import tea "github.com/charmbracelet/bubbletea"

// ModalKind names what an open modal is asking for.
type ModalKind int

const (
	ModalLogin ModalKind = iota
	ModalConfirmLogout
)

// Modal is a view drawn in place of the active tab. It receives every key
// until closed; modals close themselves by emitting DismissModalMsg.
type Modal struct {
	Kind ModalKind
	View View
}

// ModalStack holds open modals. The last one opened is on top.
type ModalStack struct {
	modals []Modal
}

// Open pushes v and returns its Init command.
func (s *ModalStack) Open(kind ModalKind, v View) tea.Cmd {
	s.modals = append(s.modals, Modal{Kind: kind, View: v})
	return v.Init()
}

// Top returns the topmost modal.
func (s *ModalStack) Top() (Modal, bool) {
	if len(s.modals) == 0 {
		return Modal{}, false
	}
	return s.modals[len(s.modals)-1], true
}

// TopIs reports whether the topmost modal is of kind.
func (s *ModalStack) TopIs(kind ModalKind) bool {
	top, ok := s.Top()
	return ok && top.Kind == kind
}

// Close removes the topmost modal. Returns false if none was open.
func (s *ModalStack) Close() bool {
	if len(s.modals) == 0 {
		return false
	}
	s.modals = s.modals[:len(s.modals)-1]
	return true
}

// CloseKind closes the topmost modal only if it is of kind.
func (s *ModalStack) CloseKind(kind ModalKind) bool {
	if !s.TopIs(kind) {
		return false
	}
	return s.Close()
}

// Len returns the number of open modals.
func (s *ModalStack) Len() int {
	return len(s.modals)
}

// Route passes msg to the topmost modal and stores the updated view.
// Reports false if no modal is open.
func (s *ModalStack) Route(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.modals) == 0 {
		return nil, false
	}
	top := &s.modals[len(s.modals)-1]
	next, cmd := top.View.Update(msg)
	top.View = next
	return cmd, true
}
