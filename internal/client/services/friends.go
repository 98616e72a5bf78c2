package services

import (
	"context"
	"sync"

	"eventtracker/internal/client/api"
	"eventtracker/internal/client/models"
	"eventtracker/internal/client/syncx"
)

// FriendsAPI is the slice of the gateway the friends page needs. The
// backend offers no friend-removal endpoint, so the collection only grows.
type FriendsAPI interface {
	Friends(ctx context.Context) ([]models.Friend, error)
	AddFriend(ctx context.Context, username string) (string, error)
}

// FriendService mirrors the friends collection, keyed by username.
type FriendService struct {
	api  FriendsAPI
	ctrl *syncx.Controller[models.Friend]

	mu       sync.Mutex
	messages map[string]string
}

func NewFriendService(a FriendsAPI) *FriendService {
	s := &FriendService{api: a, messages: make(map[string]string)}
	s.ctrl = syncx.NewController(syncx.Backend[models.Friend]{
		Fetch: s.api.Friends,
		Create: func(ctx context.Context, f models.Friend) (models.Friend, error) {
			msg, err := s.api.AddFriend(ctx, f.Username)
			if err != nil {
				return models.Friend{}, err
			}
			s.mu.Lock()
			s.messages[f.Username] = msg
			s.mu.Unlock()
			return f, nil
		},
	})
	return s
}

// Load replaces the mirror with the authoritative friends list.
func (s *FriendService) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx)
}

// List returns the mirrored friends.
func (s *FriendService) List() []models.Friend {
	return s.ctrl.Snapshot()
}

// Add links the given username optimistically and returns the backend's
// confirmation message. An empty username is rejected before any network
// call, as is one that is already a friend.
func (s *FriendService) Add(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", &api.ValidationError{Message: "friend username is required"}
	}
	if err := s.ctrl.Add(ctx, models.Friend{Username: username}); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.messages[username]
	delete(s.messages, username)
	return msg, nil
}

// Discard drops the mirror, e.g. when the session ends.
func (s *FriendService) Discard() {
	s.ctrl.Reset()
}
