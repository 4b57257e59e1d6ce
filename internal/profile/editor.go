package profile

import (
	"errors"
	"fmt"

	"communityboard/internal/form"
	"communityboard/internal/model"
	"communityboard/internal/session"
)

// State is a step of the profile editor.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateEditing
	StateSaving
	StateSaveSucceeded
	StateSaveFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateLoaded:
		return "Loaded"
	case StateEditing:
		return "Editing"
	case StateSaving:
		return "Saving"
	case StateSaveSucceeded:
		return "SaveSucceeded"
	case StateSaveFailed:
		return "SaveFailed"
	default:
		return "Unknown"
	}
}

// User-facing messages.
const (
	MsgLoginFirst   = "Please login first"
	MsgSaved        = "Profile updated successfully!"
	MsgSaveFailed   = "Failed to update profile"
	MsgServerError  = "Server error. Try again later."
	MsgFetchFailed  = "Failed to fetch user"
	MsgStillLoading = "Profile is still loading"
)

// ErrUnauthenticated means the editor has no identity token; the host must
// navigate away before any request is made.
var ErrUnauthenticated = errors.New(MsgLoginFirst)

// ErrBusy is returned when a save is requested while one is in flight or the
// profile has not loaded.
var ErrBusy = errors.New("profile editor busy")

// Editor is the profile editing state machine. It performs no I/O; the view
// runs requests and feeds outcomes back through Hydrate and FinishSave.
type Editor struct {
	sess  *session.Session
	state State
	draft Draft
	last  form.Result
}

// NewEditor creates an editor bound to sess.
func NewEditor(sess *session.Session) *Editor {
	return &Editor{sess: sess, state: StateUnloaded, draft: NewDraft()}
}

// Identity returns the token to load the profile with. It fails with
// ErrUnauthenticated when the session holds none.
func (e *Editor) Identity() (string, error) {
	if e.sess == nil {
		return "", ErrUnauthenticated
	}
	tok, err := e.sess.Require()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return tok, nil
}

// State returns the current step.
func (e *Editor) State() State { return e.state }

// Draft returns the editable values.
func (e *Editor) Draft() Draft { return e.draft }

// Result returns the outcome of the last save, if one finished.
func (e *Editor) Result() (form.Result, bool) {
	if e.state != StateSaveSucceeded && e.state != StateSaveFailed {
		return form.Result{}, false
	}
	return e.last, true
}

// Hydrate fills every field from the server record and enters Loaded.
func (e *Editor) Hydrate(rec model.ProfileRecord) {
	e.draft = FromRecord(rec)
	e.state = StateLoaded
	e.last = form.Result{}
}

// Set changes one field and enters Editing. Edits are refused before the
// profile loads and while a save is in flight.
func (e *Editor) Set(name, value string) error {
	if err := e.editable(); err != nil {
		return err
	}
	if err := e.draft.Set(name, value); err != nil {
		return err
	}
	e.state = StateEditing
	return nil
}

// Toggle flips a checkbox field and enters Editing.
func (e *Editor) Toggle(name string) error {
	if err := e.editable(); err != nil {
		return err
	}
	if err := e.draft.Toggle(name); err != nil {
		return err
	}
	e.state = StateEditing
	return nil
}

func (e *Editor) editable() error {
	switch e.state {
	case StateUnloaded, StateSaving:
		return ErrBusy
	}
	return nil
}

// BeginSave enters Saving and returns the payload to send.
func (e *Editor) BeginSave() (model.ProfileRecord, error) {
	if err := e.editable(); err != nil {
		return model.ProfileRecord{}, err
	}
	e.state = StateSaving
	return e.draft.Record(), nil
}

// FinishSave applies the outcome of a save. On success the sent values are
// re-hydrated so list fields show in normalized form; on failure the edits
// are kept and message explains why (empty means a generic failure).
func (e *Editor) FinishSave(sent model.ProfileRecord, ok bool, message string) form.Result {
	if ok {
		e.draft = FromRecord(sent)
		e.state = StateSaveSucceeded
		e.last = form.Success(MsgSaved)
		return e.last
	}
	if message == "" {
		message = MsgSaveFailed
	}
	e.state = StateSaveFailed
	e.last = form.Failure(message)
	return e.last
}
