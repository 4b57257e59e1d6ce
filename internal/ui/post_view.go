package ui

import (
	"errors"
	"strings"

	"communityboard/internal/api"
	"communityboard/internal/form"
	"communityboard/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	postTitle         = "Post Announcement"
	postTitleRequired = "Please fill in the title."
	postSucceeded     = "Announcement posted successfully!"
	postFailed        = "Failed to post announcement. Please try again."
	postPending       = "Posting..."

	fieldTitle   = "title"
	fieldContent = "content"
)

// PostView is the announcement form: a required title, free-form content
// and a submit control that is disabled while the request is pending.
type PostView struct {
	deps    Deps
	form    *form.Form
	submit  form.Submitter
	focus   FocusManager
	title   textinput.Model
	content textarea.Model
	gen     uint64
}

// Ensure PostView implements View and Capturer.
var (
	_ View     = (*PostView)(nil)
	_ Capturer = (*PostView)(nil)
)

// NewPostView creates an empty announcement form.
func NewPostView(deps Deps) *PostView {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Content"
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)

	v := &PostView{
		deps:    deps,
		form:    form.New(fieldTitle, fieldContent).Require(fieldTitle, postTitleRequired),
		title:   ti,
		content: ta,
	}
	v.focus = FocusManager{
		Order:    v.form.Fields(),
		OnChange: func(_, to string) { v.applyFocus(to) },
	}
	return v
}

// Init implements View. The title field starts focused.
func (v *PostView) Init() tea.Cmd {
	v.focus.SetFocus(fieldTitle)
	return textinput.Blink
}

// Capturing implements Capturer.
func (v *PostView) Capturing() bool {
	return v.focus.Focused()
}

// Pending reports whether a post is in flight.
func (v *PostView) Pending() bool {
	return v.submit.Pending()
}

// Result returns the outcome of the last submit attempt, if any.
func (v *PostView) Result() (form.Result, bool) {
	return v.submit.Result()
}

// Values returns the current title and content.
func (v *PostView) Values() (title, content string) {
	return v.form.Get(fieldTitle), v.form.Get(fieldContent)
}

func (v *PostView) applyFocus(to string) {
	v.title.Blur()
	v.content.Blur()
	switch to {
	case fieldTitle:
		v.title.Focus()
	case fieldContent:
		v.content.Focus()
	}
}

// Update implements View.
func (v *PostView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case announcementPostedMsg:
		return v, v.finish(msg)
	case tea.WindowSizeMsg:
		w := min(max(msg.Width-4, 20), 80)
		v.title.Width = w
		v.content.SetWidth(w)
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return v, v.submitForm()
		case "tab":
			v.focus.Next()
			return v, textinput.Blink
		case "shift+tab":
			v.focus.Prev()
			return v, textinput.Blink
		case "esc":
			v.focus.Blur()
			return v, nil
		case "enter":
			// Enter in the content area is a newline; elsewhere it submits.
			if v.focus.Current != fieldContent {
				return v, v.submitForm()
			}
		}
		if !v.focus.Focused() {
			return v, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.title, cmd = v.title.Update(msg)
	cmds = append(cmds, cmd)
	v.content, cmd = v.content.Update(msg)
	cmds = append(cmds, cmd)
	v.sync()
	return v, tea.Batch(cmds...)
}

// sync copies the widget values into the form, one named field at a time.
func (v *PostView) sync() {
	_ = v.form.Set(fieldTitle, v.title.Value())
	_ = v.form.Set(fieldContent, v.content.Value())
}

func (v *PostView) submitForm() tea.Cmd {
	v.sync()
	if err := v.form.Validate(); err != nil {
		message := err.Error()
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			message = verr.Message
		}
		v.submit.Report(form.Failure(message))
		return nil
	}
	if !v.submit.Begin() {
		return nil
	}
	v.gen++
	in := model.NewAnnouncement{
		Title:   v.form.Trimmed(fieldTitle),
		Content: v.form.Get(fieldContent),
	}
	return postAnnouncementCmd(v.deps, v.gen, in)
}

func (v *PostView) finish(msg announcementPostedMsg) tea.Cmd {
	if msg.Gen != v.gen || !v.submit.Pending() {
		return nil
	}
	if msg.Err != nil {
		v.deps.logger().Error("post announcement failed", zap.Error(msg.Err))
		v.submit.Finish(form.Failure(api.Message(msg.Err, postFailed)))
		return nil
	}
	v.submit.Finish(form.Success(postSucceeded))
	v.form.Reset()
	v.title.Reset()
	v.content.Reset()
	return msgCmd(AnnouncementPostedMsg{Announcement: msg.Announcement})
}

// View implements View.
func (v *PostView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(postTitle) + "\n\n")
	b.WriteString(v.label("Title", fieldTitle) + "\n")
	b.WriteString(v.title.View() + "\n\n")
	b.WriteString(v.label("Content", fieldContent) + "\n")
	b.WriteString(v.content.View() + "\n\n")

	if v.submit.Pending() {
		b.WriteString(Styles.ButtonDisabled.Render("[ "+postPending+" ]") + "\n")
	} else {
		b.WriteString(Styles.Button.Render("[ "+postTitle+" ]") + "\n")
	}
	if r, ok := v.submit.Result(); ok {
		b.WriteString(renderResult(r) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("tab: next field  esc: leave fields  ctrl+s: post"))
	return b.String()
}

func (v *PostView) label(text, field string) string {
	if v.focus.Current == field {
		return Styles.Selected.Render(text)
	}
	return Styles.Normal.Render(text)
}
