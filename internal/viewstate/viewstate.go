// Package viewstate implements the fetch lifecycle shared by every view:
// a tri-state value (Loading, Ready, Error) gating what may be rendered, and
// a Fetcher that drives one request at a time through it.
package viewstate

// Phase is the status part of a State.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// State is a tagged variant over Loading, Ready(payload) and Error(message).
// The zero value is Loading.
type State[T any] struct {
	phase   Phase
	payload T
	message string
}

// Loading returns the initial state.
func Loading[T any]() State[T] {
	return State[T]{phase: PhaseLoading}
}

// Ready returns a state carrying payload.
func Ready[T any](payload T) State[T] {
	return State[T]{phase: PhaseReady, payload: payload}
}

// Failed returns an error state with a user-facing message.
func Failed[T any](message string) State[T] {
	return State[T]{phase: PhaseError, message: message}
}

// Phase reports which variant s holds.
func (s State[T]) Phase() Phase { return s.phase }

// IsLoading reports whether s is Loading.
func (s State[T]) IsLoading() bool { return s.phase == PhaseLoading }

// Payload returns the payload and true only when s is Ready.
func (s State[T]) Payload() (T, bool) {
	if s.phase != PhaseReady {
		var zero T
		return zero, false
	}
	return s.payload, true
}

// Message returns the error message; empty unless s is Error.
func (s State[T]) Message() string {
	if s.phase != PhaseError {
		return ""
	}
	return s.message
}
