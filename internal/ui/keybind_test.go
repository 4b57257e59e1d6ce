package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit, "Quit")
	reg.Bind("SPC q", tea.Quit, "Quit")
	reg.Bind("j", nil, "")

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	}, "Execute")
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.Waiting() {
		t.Error("expected leader waiting after space")
	}

	// Press x -> execute SPC x
	consumed, cmd = h.Handle(keyMsg("x"))
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.Waiting() {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd != nil {
		cmd()
		if !executed {
			t.Error("expected command to execute")
		}
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit, "")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.Waiting() {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.Waiting() {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit, "Quit")
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"))
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit, "Quit")
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestLeaderHints_FilteredByTab(t *testing.T) {
	reg := newKeybindRegistry()

	hints := reg.LeaderHints("", TabStats)
	if hints["r"] != "Refresh" {
		t.Errorf("SPC r on dashboard: got %q", hints["r"])
	}
	if hints["t"] != "Tabs" || hints["s"] != "Session" {
		t.Errorf("submenus should show generic labels, got t=%q s=%q", hints["t"], hints["s"])
	}

	if _, ok := reg.LeaderHints("", TabPost)["r"]; ok {
		t.Error("refresh should not be offered on the post tab")
	}

	sub := reg.LeaderHints("SPC s", TabProfile)
	if sub["i"] != "Login" || sub["o"] != "Logout" {
		t.Errorf("SPC s hints: %v", sub)
	}
}

func TestKeyHandler_NestedSequence(t *testing.T) {
	h := NewKeyHandler(newKeybindRegistry())

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("t"))
	if !consumed || cmd != nil || !h.Waiting() {
		t.Fatalf("SPC t should wait for more keys: consumed=%v cmd=%v waiting=%v", consumed, cmd != nil, h.Waiting())
	}
	_, cmd = h.Handle(keyMsg("a"))
	if cmd == nil {
		t.Fatal("SPC t a should be bound")
	}
	if got, ok := cmd().(SwitchTabMsg); !ok || got.Tab != TabAnnouncements {
		t.Errorf("SPC t a: got %#v", cmd())
	}
}

func TestKeyHandler_DeadEndResets(t *testing.T) {
	h := NewKeyHandler(newKeybindRegistry())

	h.Handle(keyMsg(" "))
	h.Handle(keyMsg("s"))
	if got := h.Prefix(); got != "SPC s" {
		t.Fatalf("prefix: got %q", got)
	}

	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("unbound key mid-sequence: consumed=%v cmd=%v", consumed, cmd != nil)
	}
	if h.Waiting() || h.Prefix() != "" {
		t.Errorf("dead end should reset, prefix=%q", h.Prefix())
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(newKeybindRegistry())
	h.Handle(keyMsg(" "))
	out := RenderKeybindHelp(h, TabStats)
	for _, want := range []string{"SPC", "Quit", "Refresh", "esc"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
	if RenderKeybindHelp(nil, TabStats) != "" {
		t.Error("nil handler should render nothing")
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
