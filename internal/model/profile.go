package model

import "communityboard/internal/jsonutil"

// ProfileRecord is one user's community-registration details. The server owns
// it; the client edits a transient copy. Field names follow the wire format,
// including the "seperate_work" spelling.
type ProfileRecord struct {
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	DoorNo        string   `json:"door_no"`
	FloorNo       string   `json:"floor_no"`
	Apartment     string   `json:"apartment"`
	FamilyDetails string   `json:"family_details"`
	FamilyMembers []string `json:"family_members"`
	Communication string   `json:"communication"`
	WorkerType    string   `json:"worker_type"`
	Work          string   `json:"work"`
	SeperateWork  string   `json:"seperate_work"`
	Time          string   `json:"time"`
	Terms         bool     `json:"terms"`
	Status        string   `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler. Missing or null fields decode to
// their zero value and scalar fields tolerate numbers (door and floor numbers
// are sometimes stored numerically).
func (p *ProfileRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := jsonutil.UnmarshalWithContext(data, &raw, "decode profile"); err != nil {
		return err
	}
	*p = ProfileRecord{
		Firstname:     jsonutil.ToString(raw["firstname"]),
		Lastname:      jsonutil.ToString(raw["lastname"]),
		Username:      jsonutil.ToString(raw["username"]),
		Email:         jsonutil.ToString(raw["email"]),
		Phone:         jsonutil.ToString(raw["phone"]),
		DoorNo:        jsonutil.ToString(raw["door_no"]),
		FloorNo:       jsonutil.ToString(raw["floor_no"]),
		Apartment:     jsonutil.ToString(raw["apartment"]),
		FamilyDetails: jsonutil.ToString(raw["family_details"]),
		FamilyMembers: jsonutil.ToStrings(raw["family_members"]),
		Communication: jsonutil.ToString(raw["communication"]),
		WorkerType:    jsonutil.ToString(raw["worker_type"]),
		Work:          jsonutil.ToString(raw["work"]),
		SeperateWork:  jsonutil.ToString(raw["seperate_work"]),
		Time:          jsonutil.ToString(raw["time"]),
		Terms:         jsonutil.ToBool(raw["terms"]),
		Status:        jsonutil.ToString(raw["status"]),
	}
	return nil
}
