package model

import (
	"encoding/json"
	"time"
)

// Announcement is a community notice. The client never mutates one; records
// are created and deleted server-side.
type Announcement struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}

// announcementWire is the JSON shape. The backend keys records by "_id";
// "id" is accepted for backends that do not.
type announcementWire struct {
	MongoID   string    `json:"_id,omitempty"`
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Announcement) UnmarshalJSON(data []byte) error {
	var w announcementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.ID = w.MongoID
	if a.ID == "" {
		a.ID = w.ID
	}
	a.Title = w.Title
	a.Content = w.Content
	a.CreatedAt = w.CreatedAt
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Announcement) MarshalJSON() ([]byte, error) {
	return json.Marshal(announcementWire{
		MongoID:   a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
	})
}

// NewAnnouncement is the payload of a post request.
type NewAnnouncement struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
