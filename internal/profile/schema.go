// Package profile implements the profile editor: the ordered field schema
// that drives form generation, the editable draft of a ProfileRecord, and the
// editing state machine.
package profile

import (
	"strings"

	"communityboard/internal/model"
)

// Kind is how a field is edited.
type Kind int

const (
	KindText Kind = iota
	KindList      // comma-separated text, a []string on the wire
	KindBool
)

// Field describes one editable profile field.
type Field struct {
	Name  string // wire name
	Label string
	Kind  Kind

	text func(*model.ProfileRecord) *string
	list func(*model.ProfileRecord) *[]string
	flag func(*model.ProfileRecord) *bool
}

// Schema lists every editable field in display order.
var Schema = []Field{
	textField("firstname", "First name", func(r *model.ProfileRecord) *string { return &r.Firstname }),
	textField("lastname", "Last name", func(r *model.ProfileRecord) *string { return &r.Lastname }),
	textField("username", "Username", func(r *model.ProfileRecord) *string { return &r.Username }),
	textField("email", "Email", func(r *model.ProfileRecord) *string { return &r.Email }),
	textField("phone", "Phone", func(r *model.ProfileRecord) *string { return &r.Phone }),
	textField("door_no", "Door no", func(r *model.ProfileRecord) *string { return &r.DoorNo }),
	textField("floor_no", "Floor no", func(r *model.ProfileRecord) *string { return &r.FloorNo }),
	textField("apartment", "Apartment", func(r *model.ProfileRecord) *string { return &r.Apartment }),
	textField("family_details", "Family details", func(r *model.ProfileRecord) *string { return &r.FamilyDetails }),
	{Name: "family_members", Label: "Family members", Kind: KindList,
		list: func(r *model.ProfileRecord) *[]string { return &r.FamilyMembers }},
	textField("communication", "Communication", func(r *model.ProfileRecord) *string { return &r.Communication }),
	textField("worker_type", "Worker type", func(r *model.ProfileRecord) *string { return &r.WorkerType }),
	textField("work", "Work", func(r *model.ProfileRecord) *string { return &r.Work }),
	textField("seperate_work", "Separate work", func(r *model.ProfileRecord) *string { return &r.SeperateWork }),
	textField("time", "Time", func(r *model.ProfileRecord) *string { return &r.Time }),
	{Name: "terms", Label: "Terms accepted", Kind: KindBool,
		flag: func(r *model.ProfileRecord) *bool { return &r.Terms }},
	textField("status", "Status", func(r *model.ProfileRecord) *string { return &r.Status }),
}

func textField(name, label string, get func(*model.ProfileRecord) *string) Field {
	return Field{Name: name, Label: label, Kind: KindText, text: get}
}

// Lookup returns the schema entry for name.
func Lookup(name string) (Field, bool) {
	for _, f := range Schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MembersSeparator joins family members for editing.
const MembersSeparator = ", "

// JoinMembers renders a member list as editable text.
func JoinMembers(members []string) string {
	return strings.Join(members, MembersSeparator)
}

// SplitMembers parses edited text back into a list: split on commas, trim
// each entry, drop empty entries. Blank input yields an empty, non-nil list.
// For trimmed, non-empty, comma-free entries SplitMembers(JoinMembers(xs))
// returns xs.
func SplitMembers(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
