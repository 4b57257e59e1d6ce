package apitest

import "communityboard/internal/model"

// DemoUserID is the profile seeded by Seed.
const DemoUserID = "demo-user"

// Seed fills b with demo data for `serve-fake`.
func Seed(b *Backend) {
	b.SetStats(42, 47, 23)
	b.AddAnnouncement("Water supply maintenance",
		"Water will be **off** on Saturday between 10am and 2pm.")
	b.AddAnnouncement("Community meeting",
		"Monthly meeting in the clubhouse.\n\n- Budget review\n- Parking allocation")
	b.SetProfile(DemoUserID, model.ProfileRecord{
		Firstname:     "Asha",
		Lastname:      "Rao",
		Username:      "asha",
		Email:         "asha@example.com",
		Phone:         "555-0100",
		DoorNo:        "12B",
		FloorNo:       "3",
		Apartment:     "Maple Court",
		FamilyDetails: "Family of four",
		FamilyMembers: []string{"Alice", "Bob"},
		Communication: "email",
		WorkerType:    "salaried",
		Work:          "Engineer",
		Time:          "evenings",
		Terms:         true,
		Status:        "active",
	})
}
