// Package models defines the wire shapes exchanged with the Event Tracker
// backend: provider events, friends and user profiles.
package models

// Event is a provider-shaped event object as returned by GET /events.
// The backend forwards the discovery provider's payload untouched, so the
// nesting mirrors the provider and any part of it may be missing.
type Event struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Dates    EventDates    `json:"dates"`
	Images   []EventImage  `json:"images"`
	Embedded EventEmbedded `json:"_embedded"`
}

type EventDates struct {
	Start EventStart `json:"start"`
}

type EventStart struct {
	DateTime string `json:"dateTime"`
}

type EventImage struct {
	URL string `json:"url"`
}

type EventEmbedded struct {
	Venues []Venue `json:"venues"`
}

type Venue struct {
	Name string `json:"name"`
}

// Key implements syncx.Item.
func (e Event) Key() string { return e.ID }

// VenueName returns the first venue name or a placeholder when the provider
// did not embed venue data.
func (e Event) VenueName() string {
	if len(e.Embedded.Venues) == 0 || e.Embedded.Venues[0].Name == "" {
		return "Unknown location"
	}
	return e.Embedded.Venues[0].Name
}

// ImageURL returns the first image URL, or "" when none is present.
func (e Event) ImageURL() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0].URL
}
