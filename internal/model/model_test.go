package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStats_Slices(t *testing.T) {
	tests := []struct {
		name  string
		stats AdminStats
		want  []int
	}{
		{"even split", AdminStats{Men: 1, Women: 1, Children: 2}, []int{25, 25, 50}},
		{"rounding", AdminStats{Men: 1, Women: 1, Children: 1}, []int{33, 33, 33}},
		{"zero sum", AdminStats{}, []int{0, 0, 0}},
		{"single group", AdminStats{Women: 9}, []int{0, 100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slices := tt.stats.Slices()
			require.Len(t, slices, 3)
			got := []int{slices[0].Percent, slices[1].Percent, slices[2].Percent}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdminStats_SliceOrder(t *testing.T) {
	slices := AdminStats{Men: 4, Women: 5, Children: 6}.Slices()
	names := []string{slices[0].Name, slices[1].Name, slices[2].Name}
	assert.Equal(t, []string{"Men", "Women", "Children"}, names)
	assert.Equal(t, 6, slices[2].Value)
	assert.Equal(t, ColorChildren, slices[2].Color)
}

func TestAdminStats_DecodeTimestamp(t *testing.T) {
	var s AdminStats
	err := json.Unmarshal([]byte(`{"men":3,"women":4,"children":2,"total":9,"timestamp":"2025-03-01T10:30:00.000Z"}`), &s)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Total)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), s.Timestamp.UTC())
}

func TestAnnouncement_DecodeMongoID(t *testing.T) {
	var a Announcement
	err := json.Unmarshal([]byte(`{"_id":"65f0","title":"Meeting","content":"Tomorrow 5pm","createdAt":"2025-03-01T10:30:00Z"}`), &a)
	require.NoError(t, err)
	assert.Equal(t, "65f0", a.ID)
	assert.Equal(t, "Meeting", a.Title)
}

func TestAnnouncement_DecodePlainID(t *testing.T) {
	var a Announcement
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","title":"x","content":"","createdAt":"2025-03-01T10:30:00Z"}`), &a))
	assert.Equal(t, "7", a.ID)
}

func TestAnnouncement_EncodeUsesMongoID(t *testing.T) {
	data, err := json.Marshal(Announcement{ID: "abc", Title: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_id":"abc"`)
	assert.NotContains(t, string(data), `"id"`)
}

func TestProfileRecord_DecodeDefaultsAndNumbers(t *testing.T) {
	var p ProfileRecord
	err := json.Unmarshal([]byte(`{
		"firstname": "Asha",
		"door_no": 12,
		"floor_no": null,
		"family_members": ["Alice", "Bob"],
		"terms": true
	}`), &p)
	require.NoError(t, err)

	want := ProfileRecord{
		Firstname:     "Asha",
		DoorNo:        "12",
		FamilyMembers: []string{"Alice", "Bob"},
		Terms:         true,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("decoded profile mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileRecord_EncodeWireNames(t *testing.T) {
	data, err := json.Marshal(ProfileRecord{SeperateWork: "no", FamilyMembers: []string{"A"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seperate_work":"no"`)
	assert.Contains(t, string(data), `"family_members":["A"]`)
}

func TestProfileRecord_DecodeRejectsNonObject(t *testing.T) {
	var p ProfileRecord
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &p))
}
