package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap adapts the leader hints for the active tab to help.KeyMap.
type KeyMap struct {
	handler *KeyHandler
	tab     Tab
}

var _ help.KeyMap = KeyMap{}

// NewKeyMap returns the hints reachable from the handler's current prefix.
func NewKeyMap(h *KeyHandler, tab Tab) KeyMap {
	return KeyMap{handler: h, tab: tab}
}

// ShortHelp implements help.KeyMap. Keys are sorted; esc is always last.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.Registry == nil {
		return nil
	}
	hints := km.handler.Registry.LeaderHints(km.handler.Prefix(), km.tab)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp implements help.KeyMap as a single column.
func (km KeyMap) FullHelp() [][]key.Binding {
	if short := km.ShortHelp(); len(short) > 0 {
		return [][]key.Binding{short}
	}
	return nil
}

// RenderKeybindHelp draws the bar shown while a leader sequence is typed.
func RenderKeybindHelp(h *KeyHandler, tab Tab) string {
	if h == nil {
		return ""
	}
	bindings := NewKeyMap(h, tab).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	hm := help.New()
	hm.Styles.ShortKey = Styles.Selected
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted

	prefix := h.Prefix()
	if prefix == "" {
		prefix = Leader
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1)
	return box.Render(Styles.Muted.Render(prefix) + " " + hm.ShortHelpView(bindings))
}
