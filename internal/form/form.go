// Package form holds editable field state for submit-style views: a uniform
// per-field change handler, required-field validation, a pending guard so
// only one submission is in flight, and the Result reported back to the view.
package form

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a change names a field the form lacks.
var ErrUnknownField = errors.New("unknown field")

// Result is the outcome of a submission as shown to the user.
type Result struct {
	OK      bool
	Message string
}

// Success returns an OK result.
func Success(message string) Result { return Result{OK: true, Message: message} }

// Failure returns a failed result.
func Failure(message string) Result { return Result{OK: false, Message: message} }

// ValidationError reports a field that failed a local check. No request is
// made when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type requirement struct {
	field   string
	message string
}

// Form is an ordered set of named string fields.
type Form struct {
	order    []string
	values   map[string]string
	required []requirement
}

// New creates a form with the given fields, all empty.
func New(fields ...string) *Form {
	f := &Form{
		order:  append([]string(nil), fields...),
		values: make(map[string]string, len(fields)),
	}
	for _, name := range fields {
		f.values[name] = ""
	}
	return f
}

// Require marks field as non-empty after trimming; message is reported when
// it is not. Requirements are checked in the order they were added.
func (f *Form) Require(field, message string) *Form {
	f.required = append(f.required, requirement{field: field, message: message})
	return f
}

// Set updates one named field.
func (f *Form) Set(field, value string) error {
	if _, ok := f.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.values[field] = value
	return nil
}

// Get returns the current value of field ("" if unknown).
func (f *Form) Get(field string) string {
	return f.values[field]
}

// Trimmed returns the value of field with surrounding whitespace removed.
func (f *Form) Trimmed(field string) string {
	return strings.TrimSpace(f.values[field])
}

// Fields returns the field names in declaration order.
func (f *Form) Fields() []string {
	return append([]string(nil), f.order...)
}

// Reset clears every field.
func (f *Form) Reset() {
	for k := range f.values {
		f.values[k] = ""
	}
}

// Validate returns the first failed requirement as a *ValidationError.
func (f *Form) Validate() error {
	for _, r := range f.required {
		if f.Trimmed(r.field) == "" {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}
