package ui

import "communityboard/internal/model"

// SwitchTabMsg activates a tab, mounting its view on first use.
type SwitchTabMsg struct {
	Tab Tab
}

// RefreshMsg re-runs the active view's fetch (r or SPC r).
type RefreshMsg struct{}

// ShowLoginMsg opens the login prompt. Reason is shown above the input.
type ShowLoginMsg struct {
	Reason string
}

// RedirectToLoginMsg is sent by a view that cannot proceed without an
// identity token. The host leaves that view and opens the login prompt.
type RedirectToLoginMsg struct {
	From   Tab
	Reason string
}

// LoginMsg is sent when the user submits an identity token from the prompt.
type LoginMsg struct {
	Token string
}

// ShowLogoutMsg asks for confirmation before logging out (SPC s o).
type ShowLogoutMsg struct{}

// LogoutMsg clears the session.
type LogoutMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// AnnouncementPostedMsg is emitted by the post view after a successful
// submit so the host can refresh the announcement list.
type AnnouncementPostedMsg struct {
	Announcement model.Announcement
}

// statsLoadedMsg carries the result of GetAdminStats for generation Gen.
type statsLoadedMsg struct {
	Gen   uint64
	Stats model.AdminStats
	Err   error
}

// announcementsLoadedMsg carries the result of GetAnnouncements.
type announcementsLoadedMsg struct {
	Gen           uint64
	Announcements []model.Announcement
	Err           error
}

// announcementPostedMsg carries the result of PostAnnouncement.
type announcementPostedMsg struct {
	Gen          uint64
	Announcement model.Announcement
	Err          error
}

// profileLoadedMsg carries the result of GetProfile.
type profileLoadedMsg struct {
	Gen    uint64
	Record model.ProfileRecord
	Err    error
}

// profileSavedMsg carries the result of UpdateProfile. Sent is the payload
// that was submitted.
type profileSavedMsg struct {
	Gen  uint64
	Sent model.ProfileRecord
	Err  error
}
