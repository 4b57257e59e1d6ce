package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies API failures.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindValidation
	KindNotFound
	KindUnauthenticated
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation that fails.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "getAdminStats"
	Status  int    // HTTP status; 0 when no response arrived
	Message string // server-supplied message, if any
	Err     error  // underlying cause
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrNetwork         = &Error{Kind: KindNetwork}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrServer          = &Error{Kind: KindServer}
)

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// kindForStatus maps an HTTP status to an error Kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthenticated
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

// Message returns the text to show the user for err: the server-supplied
// message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Kind != KindNetwork {
		return apiErr.Message
	}
	return fallback
}
