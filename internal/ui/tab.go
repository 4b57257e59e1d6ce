package ui

// Tab identifies one of the top-level views hosted by AppModel.
type Tab int

const (
	TabStats Tab = iota
	TabAnnouncements
	TabPost
	TabProfile
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabStats, TabAnnouncements, TabPost, TabProfile}

func (t Tab) String() string {
	switch t {
	case TabStats:
		return "Dashboard"
	case TabAnnouncements:
		return "Announcements"
	case TabPost:
		return "Post"
	case TabProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}
