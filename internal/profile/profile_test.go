package profile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityboard/internal/model"
	"communityboard/internal/session"
)

func TestSchema_UniqueOrderedNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Schema {
		assert.False(t, seen[f.Name], "duplicate field %q", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.Label)
	}
	assert.Len(t, Schema, 17)
	assert.Equal(t, "firstname", Schema[0].Name)
	assert.Equal(t, "status", Schema[len(Schema)-1].Name)

	f, ok := Lookup("family_members")
	require.True(t, ok)
	assert.Equal(t, KindList, f.Kind)
	f, ok = Lookup("terms")
	require.True(t, ok)
	assert.Equal(t, KindBool, f.Kind)
}

func TestSplitMembers(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"Alice", []string{"Alice"}},
		{"Alice, Bob", []string{"Alice", "Bob"}},
		{" Alice ,Bob,  ", []string{"Alice", "Bob"}},
		{"Alice,,Bob", []string{"Alice", "Bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitMembers(tt.in))
		})
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"Alice"},
		{"Alice", "Bob"},
		{"Mary Ann", "Jo", "Li Wei"},
	}
	for _, xs := range lists {
		got := SplitMembers(JoinMembers(xs))
		if diff := cmp.Diff(xs, got); diff != "" {
			t.Errorf("round trip of %v (-want +got):\n%s", xs, diff)
		}
	}
}

func TestDraft_HydrateAndSerialize(t *testing.T) {
	rec := model.ProfileRecord{
		Firstname:     "Asha",
		SeperateWork:  "yes",
		FamilyMembers: []string{"Alice", "Bob"},
		Terms:         true,
	}
	d := FromRecord(rec)
	assert.Equal(t, "Alice, Bob", d.Value("family_members"))
	assert.Equal(t, "true", d.Value("terms"))
	assert.Equal(t, "", d.Value("email"))

	back := d.Record()
	assert.Equal(t, []string{"Alice", "Bob"}, back.FamilyMembers)
	assert.Equal(t, "yes", back.SeperateWork)
	assert.True(t, back.Terms)
}

func TestDraft_EmptyMembersSerializeAsEmptyList(t *testing.T) {
	rec := NewDraft().Record()
	require.NotNil(t, rec.FamilyMembers)
	assert.Empty(t, rec.FamilyMembers)
}

func TestDraft_SetValidation(t *testing.T) {
	d := NewDraft()
	assert.Error(t, d.Set("nope", "x"))
	assert.Error(t, d.Set("terms", "maybe"))
	require.NoError(t, d.Set("terms", "true"))
	assert.True(t, d.Flag("terms"))
	assert.Error(t, d.Toggle("email"))
}

func TestEditor_RequiresIdentity(t *testing.T) {
	e := NewEditor(session.New(""))
	_, err := e.Identity()
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	e = NewEditor(nil)
	_, err = e.Identity()
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	e = NewEditor(session.New("u1"))
	id, err := e.Identity()
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestEditor_StateMachine(t *testing.T) {
	e := NewEditor(session.New("u1"))
	assert.Equal(t, StateUnloaded, e.State())
	assert.ErrorIs(t, e.Set("email", "x"), ErrBusy)
	_, err := e.BeginSave()
	assert.ErrorIs(t, err, ErrBusy)

	e.Hydrate(model.ProfileRecord{Firstname: "Asha", FamilyMembers: []string{"Alice", "Bob"}})
	assert.Equal(t, StateLoaded, e.State())

	require.NoError(t, e.Set("email", "asha@example.com"))
	assert.Equal(t, StateEditing, e.State())

	sent, err := e.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, StateSaving, e.State())
	assert.Equal(t, "asha@example.com", sent.Email)
	assert.ErrorIs(t, e.Set("email", "y"), ErrBusy)
	_, err = e.BeginSave()
	assert.ErrorIs(t, err, ErrBusy)

	res := e.FinishSave(sent, true, "")
	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "successfully")
	assert.Equal(t, StateSaveSucceeded, e.State())
	got, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, res, got)

	require.NoError(t, e.Toggle("terms"))
	assert.Equal(t, StateEditing, e.State())
	_, ok = e.Result()
	assert.False(t, ok)
}

func TestEditor_SaveFailureKeepsEdits(t *testing.T) {
	e := NewEditor(session.New("u1"))
	e.Hydrate(model.ProfileRecord{})
	require.NoError(t, e.Set("phone", "555"))
	sent, err := e.BeginSave()
	require.NoError(t, err)

	res := e.FinishSave(sent, false, "Email already in use")
	assert.False(t, res.OK)
	assert.Equal(t, "Email already in use", res.Message)
	assert.Equal(t, StateSaveFailed, e.State())
	assert.Equal(t, "555", e.Draft().Value("phone"))

	// A failed save can be retried directly.
	_, err = e.BeginSave()
	require.NoError(t, err)
	res = e.FinishSave(sent, false, "")
	assert.Equal(t, MsgSaveFailed, res.Message)
}

func TestEditor_SaveNormalizesMembers(t *testing.T) {
	e := NewEditor(session.New("u1"))
	e.Hydrate(model.ProfileRecord{})
	require.NoError(t, e.Set("family_members", " Alice ,Bob"))
	sent, err := e.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, sent.FamilyMembers)

	e.FinishSave(sent, true, "")
	assert.Equal(t, "Alice, Bob", e.Draft().Value("family_members"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "SaveFailed", StateSaveFailed.String())
	assert.Equal(t, "Unknown", State(99).String())
}
