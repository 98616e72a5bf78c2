package models

import "strconv"

// Profile is the response of GET /user/:username.
type Profile struct {
	Username       string       `json:"username"`
	Bio            string       `json:"bio,omitempty"`
	ProfilePicture string       `json:"profile_picture,omitempty"`
	Latitude       *float64     `json:"latitude,omitempty"`
	Longitude      *float64     `json:"longitude,omitempty"`
	SavedEvents    []SavedEvent `json:"saved_events"`
}

// SavedEvent is one row of a profile's saved-events collection. Unlike Event
// it is keyed by the backend's own row id, which the remove endpoint expects.
// APIEventID carries the provider event id when the backend exposes it.
type SavedEvent struct {
	SavedEventID int64  `json:"saved_event_id"`
	APIEventID   string `json:"api_event_id,omitempty"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
	Date         string `json:"date,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// Key implements syncx.Item.
func (s SavedEvent) Key() string { return strconv.FormatInt(s.SavedEventID, 10) }

// SavedMark is a membership marker for the events list: the set of provider
// event ids the current user has saved. It carries no other fields.
type SavedMark struct {
	APIEventID string `json:"api_event_id"`
}

// Key implements syncx.Item.
func (m SavedMark) Key() string { return m.APIEventID }
