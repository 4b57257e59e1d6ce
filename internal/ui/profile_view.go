package ui

import (
	"strings"

	"communityboard/internal/api"
	"communityboard/internal/model"
	"communityboard/internal/profile"
	"communityboard/internal/ui/textutil"
	"communityboard/internal/viewstate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	profileTitle       = "Your Profile"
	profileLoadingText = "Loading..."
	profileSaveLabel   = "Save Changes"
	profileSavingLabel = "Saving..."
	profileUnsavedText = "Save your changes before refreshing"

	labelWidth = 16
)

// ProfileView edits the signed-in user's profile. Its form is generated
// from profile.Schema: text and list fields become text inputs, the bool
// field a checkbox. Without an identity token it asks the host to redirect
// to the login prompt and makes no request.
type ProfileView struct {
	deps     Deps
	editor   *profile.Editor
	fetch    *viewstate.Fetcher[model.ProfileRecord]
	spinner  spinner.Model
	inputs   map[string]textinput.Model
	focus    FocusManager
	identity string
	redirect bool
	saveGen  uint64
	notice   string
}

// Ensure ProfileView implements View and Capturer.
var (
	_ View     = (*ProfileView)(nil)
	_ Capturer = (*ProfileView)(nil)
)

// NewProfileView creates the profile editor bound to deps.Session.
func NewProfileView(deps Deps) *ProfileView {
	v := &ProfileView{
		deps:    deps,
		editor:  profile.NewEditor(deps.Session),
		fetch:   viewstate.NewFetcher[model.ProfileRecord]("profile", profile.MsgFetchFailed, deps.logger()),
		spinner: newSpinner(),
		inputs:  make(map[string]textinput.Model),
	}
	order := make([]string, 0, len(profile.Schema))
	for _, f := range profile.Schema {
		order = append(order, f.Name)
		if f.Kind == profile.KindBool {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Label
		ti.Width = 40
		v.inputs[f.Name] = ti
	}
	v.focus = FocusManager{
		Order:    order,
		OnChange: func(from, to string) { v.applyFocus(from, to) },
	}
	return v
}

// Init implements View. The identity check happens before any request.
func (v *ProfileView) Init() tea.Cmd {
	id, err := v.editor.Identity()
	if err != nil {
		v.redirect = true
		v.identity = ""
		return msgCmd(RedirectToLoginMsg{From: TabProfile, Reason: profile.MsgLoginFirst})
	}
	v.redirect = false
	v.identity = id
	return v.load()
}

// Reset discards the loaded profile and any edits, e.g. after logout. The
// request generations keep counting so late responses are still dropped.
func (v *ProfileView) Reset() {
	v.fetch.Abandon()
	v.editor = profile.NewEditor(v.deps.Session)
	v.identity = ""
	v.redirect = false
	v.notice = ""
	v.focus.Blur()
	v.syncInputs()
}

func (v *ProfileView) load() tea.Cmd {
	if v.fetch.InFlight() {
		return nil
	}
	gen := v.fetch.Begin()
	return tea.Batch(v.spinner.Tick, fetchProfileCmd(v.deps, gen, v.identity))
}

// Redirected reports whether the view gave up for lack of an identity token.
func (v *ProfileView) Redirected() bool { return v.redirect }

// State returns the fetch state.
func (v *ProfileView) State() viewstate.State[model.ProfileRecord] { return v.fetch.State() }

// EditorState returns the editing step.
func (v *ProfileView) EditorState() profile.State { return v.editor.State() }

// FieldValue returns the draft value of a field.
func (v *ProfileView) FieldValue(name string) string { return v.editor.Draft().Value(name) }

// Capturing implements Capturer.
func (v *ProfileView) Capturing() bool { return v.focus.Focused() }

func (v *ProfileView) applyFocus(from, to string) {
	if in, ok := v.inputs[from]; ok {
		in.Blur()
		v.inputs[from] = in
	}
	if in, ok := v.inputs[to]; ok {
		in.Focus()
		v.inputs[to] = in
	}
}

// syncInputs copies the draft into the text inputs.
func (v *ProfileView) syncInputs() {
	d := v.editor.Draft()
	for name, in := range v.inputs {
		in.SetValue(d.Value(name))
		v.inputs[name] = in
	}
}

// Update implements View.
func (v *ProfileView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		v.loaded(msg)
		return v, nil
	case profileSavedMsg:
		v.saved(msg)
		return v, nil
	case RefreshMsg:
		if v.redirect || v.identity == "" {
			return v, v.Init()
		}
		switch v.editor.State() {
		case profile.StateSaving:
			return v, nil
		case profile.StateEditing, profile.StateSaveFailed:
			v.notice = profileUnsavedText
			return v, nil
		}
		return v, v.load()
	case spinner.TickMsg:
		if v.fetch.State().IsLoading() && !v.redirect {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	if in, ok := v.inputs[v.focus.Current]; ok {
		var cmd tea.Cmd
		in, cmd = in.Update(msg)
		v.inputs[v.focus.Current] = in
		return v, cmd
	}
	return v, nil
}

func (v *ProfileView) loaded(msg profileLoadedMsg) {
	if msg.Err != nil {
		v.fetch.Fail(msg.Gen, userMessage(msg.Err, profile.MsgFetchFailed), msg.Err)
		return
	}
	if v.fetch.Resolve(msg.Gen, msg.Record, nil) {
		v.editor.Hydrate(msg.Record)
		v.notice = ""
		v.syncInputs()
	}
}

func (v *ProfileView) saved(msg profileSavedMsg) {
	if msg.Gen != v.saveGen || v.editor.State() != profile.StateSaving {
		return
	}
	if msg.Err != nil {
		v.deps.logger().Error("update profile failed", zap.Error(msg.Err))
		v.editor.FinishSave(msg.Sent, false, userMessage(msg.Err, profile.MsgSaveFailed))
		return
	}
	v.editor.FinishSave(msg.Sent, true, "")
	v.syncInputs()
}

// userMessage picks the text shown for a failed request: the server's own
// message, a generic one when the server was unreachable, else fallback.
func userMessage(err error, fallback string) string {
	if api.IsKind(err, api.KindNetwork) {
		return profile.MsgServerError
	}
	return api.Message(err, fallback)
}

func (v *ProfileView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return v.save()
	case "tab", "down":
		v.focus.Next()
		return textinput.Blink
	case "shift+tab", "up":
		v.focus.Prev()
		return textinput.Blink
	case "esc":
		v.focus.Blur()
		return nil
	}
	// Edits only apply to a profile that is on screen.
	if v.fetch.State().Phase() != viewstate.PhaseReady {
		return nil
	}
	if !v.focus.Focused() {
		if msg.String() == "enter" {
			v.focus.Next()
			return textinput.Blink
		}
		return nil
	}

	field, _ := profile.Lookup(v.focus.Current)
	if field.Kind == profile.KindBool {
		switch msg.String() {
		case " ", "x", "enter":
			if err := v.editor.Toggle(field.Name); err != nil {
				v.deps.logger().Debug("toggle refused", zap.String("field", field.Name), zap.Error(err))
			}
		}
		return nil
	}
	if msg.String() == "enter" {
		v.focus.Next()
		return textinput.Blink
	}

	in := v.inputs[field.Name]
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	if after := in.Value(); after != before {
		if err := v.editor.Set(field.Name, after); err != nil {
			in.SetValue(before)
		}
	}
	v.inputs[field.Name] = in
	return cmd
}

func (v *ProfileView) save() tea.Cmd {
	if v.redirect || v.identity == "" {
		return msgCmd(RedirectToLoginMsg{From: TabProfile, Reason: profile.MsgLoginFirst})
	}
	if v.fetch.InFlight() {
		v.notice = profile.MsgStillLoading
		return nil
	}
	if v.fetch.State().Phase() != viewstate.PhaseReady {
		return nil
	}
	rec, err := v.editor.BeginSave()
	if err != nil {
		if v.editor.State() == profile.StateUnloaded {
			v.notice = profile.MsgStillLoading
		}
		return nil
	}
	v.notice = ""
	v.saveGen++
	return saveProfileCmd(v.deps, v.saveGen, v.identity, rec)
}

// View implements View.
func (v *ProfileView) View() string {
	if v.redirect {
		return Styles.Error.Render(profile.MsgLoginFirst) + "\n" + Styles.Hint.Render("Press SPC s i to login")
	}
	state := v.fetch.State()
	switch state.Phase() {
	case viewstate.PhaseLoading:
		return v.spinner.View() + " " + profileLoadingText
	case viewstate.PhaseError:
		return Styles.Error.Render(state.Message()) + "\n" + Styles.Hint.Render("Press r to retry")
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render(profileTitle) + "\n\n")
	draft := v.editor.Draft()
	for _, f := range profile.Schema {
		label := textutil.PadRightVisual(f.Label, labelWidth)
		if v.focus.Current == f.Name {
			label = Styles.Selected.Render(label)
		} else {
			label = Styles.Normal.Render(label)
		}
		var value string
		if f.Kind == profile.KindBool {
			value = checkbox(draft.Flag(f.Name))
		} else {
			value = v.inputs[f.Name].View()
		}
		b.WriteString(label + " " + value + "\n")
	}
	b.WriteString("\n")

	if v.editor.State() == profile.StateSaving {
		b.WriteString(Styles.ButtonDisabled.Render("[ "+profileSavingLabel+" ]") + "\n")
	} else {
		b.WriteString(Styles.Button.Render("[ "+profileSaveLabel+" ]") + "\n")
	}
	if r, ok := v.editor.Result(); ok {
		b.WriteString(renderResult(r) + "\n")
	}
	if v.notice != "" {
		b.WriteString(Styles.Error.Render(v.notice) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("tab: next field  space: toggle  ctrl+s: save  SPC s o: logout"))
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
