package profile

import (
	"fmt"
	"strconv"

	"communityboard/internal/model"
)

// Draft is the client's transient editable copy of a profile. Text and list
// fields are held as strings, the bool field as a flag.
type Draft struct {
	text  map[string]string
	flags map[string]bool
}

// NewDraft returns a draft with every field empty or false.
func NewDraft() Draft {
	return FromRecord(model.ProfileRecord{})
}

// FromRecord hydrates a draft from rec. Missing values are already zero in
// rec, so they show as empty or false.
func FromRecord(rec model.ProfileRecord) Draft {
	d := Draft{
		text:  make(map[string]string, len(Schema)),
		flags: make(map[string]bool),
	}
	for _, f := range Schema {
		switch f.Kind {
		case KindText:
			d.text[f.Name] = *f.text(&rec)
		case KindList:
			d.text[f.Name] = JoinMembers(*f.list(&rec))
		case KindBool:
			d.flags[f.Name] = *f.flag(&rec)
		}
	}
	return d
}

// Record serializes the draft into the write payload shape, splitting list
// fields back into slices.
func (d Draft) Record() model.ProfileRecord {
	var rec model.ProfileRecord
	for _, f := range Schema {
		switch f.Kind {
		case KindText:
			*f.text(&rec) = d.text[f.Name]
		case KindList:
			*f.list(&rec) = SplitMembers(d.text[f.Name])
		case KindBool:
			*f.flag(&rec) = d.flags[f.Name]
		}
	}
	return rec
}

// Value returns the display value of a field; bool fields render as
// "true"/"false".
func (d Draft) Value(name string) string {
	if v, ok := d.flags[name]; ok {
		return strconv.FormatBool(v)
	}
	return d.text[name]
}

// Flag returns a bool field's value.
func (d Draft) Flag(name string) bool {
	return d.flags[name]
}

// Set updates one named field. Bool fields accept "true"/"false".
func (d *Draft) Set(name, value string) error {
	f, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown profile field %q", name)
	}
	if f.Kind == KindBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		d.flags[name] = b
		return nil
	}
	d.text[name] = value
	return nil
}

// Toggle flips a bool field.
func (d *Draft) Toggle(name string) error {
	f, ok := Lookup(name)
	if !ok || f.Kind != KindBool {
		return fmt.Errorf("field %q is not a checkbox", name)
	}
	d.flags[name] = !d.flags[name]
	return nil
}
