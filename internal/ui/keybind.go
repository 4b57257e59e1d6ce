package ui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Leader is the canonical name of the leader key in sequences. Sequences
// are space separated: "q", "SPC r", "SPC t a".
const Leader = "SPC"

// binding is one registered key sequence.
type binding struct {
	cmd  tea.Cmd
	desc string
	tabs []Tab // empty means every tab
}

func (b binding) appliesTo(tab Tab) bool {
	return len(b.tabs) == 0 || slices.Contains(b.tabs, tab)
}

// submenuLabels name leader prefixes that open a further level.
var submenuLabels = map[string]string{
	"t": "Tabs",
	"s": "Session",
}

// KeybindRegistry maps key sequences to commands.
type KeybindRegistry struct {
	bindings map[string]binding
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq, replacing any earlier binding. desc is shown in the
// leader help; tabs limits where the hint is offered (none means all).
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd, desc string, tabs ...Tab) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, tabs: tabs}
}

// Lookup returns the command bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// HasPrefix reports whether a longer bound sequence starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k, b := range r.bindings {
		if b.cmd != nil && strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the keys that can follow seq on tab, mapped to their
// description. An empty seq means just the leader. Keys that open a
// further level get the submenu label instead of one of its actions.
func (r *KeybindRegistry) LeaderHints(seq string, tab Tab) map[string]string {
	if seq == "" {
		seq = Leader
	}
	prefix := normalizeSeq(seq) + " "
	out := make(map[string]string)
	for k, b := range r.bindings {
		if b.cmd == nil || !b.appliesTo(tab) || !strings.HasPrefix(k, prefix) {
			continue
		}
		next, rest, _ := strings.Cut(strings.TrimPrefix(k, prefix), " ")
		switch {
		case rest != "":
			if label, ok := submenuLabels[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = k
		}
	}
	return out
}

// normalizeSeq rewrites tea's names for space to Leader.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return Leader
	}
	return s
}

// KeyHandler tracks a partially typed leader sequence and dispatches
// complete ones to the registry.
type KeyHandler struct {
	Registry *KeybindRegistry
	pending  []string // typed so far, starting with Leader; nil when idle
}

// NewKeyHandler creates a handler with space as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Waiting reports whether a leader sequence is in progress.
func (h *KeyHandler) Waiting() bool {
	return len(h.pending) > 0
}

// Prefix returns the sequence typed so far, e.g. "SPC s".
func (h *KeyHandler) Prefix() string {
	return strings.Join(h.pending, " ")
}

// Reset abandons any sequence in progress.
func (h *KeyHandler) Reset() {
	h.pending = nil
}

// Handle processes a key. consumed means the key belonged to the keybind
// system and must not reach the active view; cmd is what to run, if any.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	part := keyToSeqPart(msg.String())

	if !h.Waiting() {
		if part == Leader {
			h.pending = []string{Leader}
			return true, nil
		}
		if c := h.Registry.Lookup(part); c != nil {
			return true, c
		}
		return false, nil
	}

	// Mid-sequence every key is consumed; esc or a dead end cancels.
	if part == "esc" {
		h.Reset()
		return true, nil
	}
	h.pending = append(h.pending, part)
	seq := h.Prefix()
	if c := h.Registry.Lookup(seq); c != nil {
		h.Reset()
		return true, c
	}
	if !h.Registry.HasPrefix(seq) {
		h.Reset()
	}
	return true, nil
}
