package services

import (
	"context"
	"io"
	"sync"

	"eventtracker/internal/client/models"
	"eventtracker/internal/client/syncx"
)

// ProfileAPI is the slice of the gateway a profile page needs.
type ProfileAPI interface {
	Profile(ctx context.Context, username string) (models.Profile, error)
	RemoveSavedEvent(ctx context.Context, savedEventID string) error
	UpdateProfile(ctx context.Context, bio string, pictureName string, picture io.Reader) error
}

// ProfileService shows one user's profile and mirrors their saved events,
// keyed by the backend's saved-event row id. One instance per viewed
// profile; Close it when navigating away so late responses are dropped.
type ProfileService struct {
	api      ProfileAPI
	username string

	mu     sync.Mutex
	header models.Profile

	saved *syncx.Controller[models.SavedEvent]
}

func NewProfileService(a ProfileAPI, username string) *ProfileService {
	s := &ProfileService{api: a, username: username}
	s.saved = syncx.NewController(syncx.Backend[models.SavedEvent]{
		Fetch:  s.fetchSaved,
		Delete: s.api.RemoveSavedEvent,
	})
	return s
}

// fetchSaved pulls the profile and keeps the non-collection fields aside
// while the controller owns the saved-events mirror.
func (s *ProfileService) fetchSaved(ctx context.Context) ([]models.SavedEvent, error) {
	profile, err := s.api.Profile(ctx, s.username)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.header = profile
	s.header.SavedEvents = nil
	s.mu.Unlock()

	return profile.SavedEvents, nil
}

// Load fetches the profile and replaces the saved-events mirror.
func (s *ProfileService) Load(ctx context.Context) error {
	return s.saved.Load(ctx)
}

// Profile returns the last loaded header with the mirrored saved events.
func (s *ProfileService) Profile() models.Profile {
	s.mu.Lock()
	profile := s.header
	s.mu.Unlock()
	profile.SavedEvents = s.saved.Snapshot()
	return profile
}

// RemoveSaved removes a saved event by its row id, optimistically; a failed
// call restores the entry at its prior position in the list.
func (s *ProfileService) RemoveSaved(ctx context.Context, savedEventID string) error {
	return s.saved.Remove(ctx, savedEventID)
}

// Update submits a new bio and optional profile picture.
func (s *ProfileService) Update(ctx context.Context, bio string, pictureName string, picture io.Reader) error {
	return s.api.UpdateProfile(ctx, bio, pictureName, picture)
}

// Username returns the profile owner this service is bound to.
func (s *ProfileService) Username() string { return s.username }

// Close discards the mirror permanently; in-flight responses arriving later
// are ignored.
func (s *ProfileService) Close() {
	s.saved.Close()
}
