// Package services wires the generic sync controller to the concrete
// collections of the Event Tracker backend: saved-event marks on the events
// list, the friends list, and a profile's saved events.
package services

import (
	"context"

	"eventtracker/internal/client/api"
	"eventtracker/internal/client/models"
	"eventtracker/internal/client/syncx"
)

// EventsAPI is the slice of the gateway the events page needs.
type EventsAPI interface {
	Events(ctx context.Context) ([]models.Event, error)
	SaveEvent(ctx context.Context, apiEventID string) error
	UnsaveEventByAPIID(ctx context.Context, apiEventID string) error
	Profile(ctx context.Context, username string) (models.Profile, error)
}

// EventService lists nearby events and mirrors which of them the current
// user has saved. The mirror is keyed by the provider event id; save and
// unsave are optimistic with rollback.
type EventService struct {
	api         EventsAPI
	currentUser func() string
	marks       *syncx.Controller[models.SavedMark]
}

func NewEventService(a EventsAPI, currentUser func() string) *EventService {
	s := &EventService{api: a, currentUser: currentUser}
	s.marks = syncx.NewController(syncx.Backend[models.SavedMark]{
		Fetch: s.fetchMarks,
		Create: func(ctx context.Context, m models.SavedMark) (models.SavedMark, error) {
			return m, s.api.SaveEvent(ctx, m.APIEventID)
		},
		Delete: s.api.UnsaveEventByAPIID,
	})
	return s
}

// fetchMarks derives the authoritative saved set from the user's profile.
// Saved events the backend exposes without a provider id cannot be marked
// on the list and are skipped.
func (s *EventService) fetchMarks(ctx context.Context) ([]models.SavedMark, error) {
	username := s.currentUser()
	if username == "" {
		return nil, nil
	}
	profile, err := s.api.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	var marks []models.SavedMark
	for _, se := range profile.SavedEvents {
		if se.APIEventID != "" {
			marks = append(marks, models.SavedMark{APIEventID: se.APIEventID})
		}
	}
	return marks, nil
}

// List fetches nearby events. It does not touch the saved-marks mirror.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.api.Events(ctx)
}

// Refresh reloads the saved-marks mirror from the backend.
func (s *EventService) Refresh(ctx context.Context) error {
	return s.marks.Load(ctx)
}

// Save marks the event as saved, optimistically. Saving an event that is
// already saved (or has a save in flight) is rejected locally.
func (s *EventService) Save(ctx context.Context, apiEventID string) error {
	if apiEventID == "" {
		return &api.ValidationError{Message: "event id is required"}
	}
	return s.marks.Add(ctx, models.SavedMark{APIEventID: apiEventID})
}

// Unsave removes the saved mark; unsaving an unsaved event is a no-op.
func (s *EventService) Unsave(ctx context.Context, apiEventID string) error {
	return s.marks.Remove(ctx, apiEventID)
}

// IsSaved reports whether the event is currently marked saved.
func (s *EventService) IsSaved(apiEventID string) bool {
	return s.marks.Contains(apiEventID)
}

// Discard drops the saved-marks mirror, e.g. when the session ends.
func (s *EventService) Discard() {
	s.marks.Reset()
}
