package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"eventtracker/internal/client/models"
)

// Typed wrappers over the backend's HTTP contract. Each method maps to one
// endpoint and returns the gateway's error taxonomy on failure.

// LoginResponse is the success body of POST /login. The backend may answer
// with a token, a session cookie, or both; in cookie mode Token stays empty.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CheckAuth asks the backend who the current credential belongs to.
func (c *Client) CheckAuth(ctx context.Context) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/check-auth", nil, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	in := map[string]string{"username": username, "password": password}
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	in := map[string]string{"username": username, "email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/register", in, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/logout", nil, nil)
}

// Events lists provider events near the user's stored location.
func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveEvent(ctx context.Context, apiEventID string) error {
	return c.doJSON(ctx, http.MethodPost, "/save_event/"+url.PathEscape(apiEventID), nil, nil)
}

func (c *Client) UnsaveEventByAPIID(ctx context.Context, apiEventID string) error {
	return c.doJSON(ctx, http.MethodPost, "/remove_saved_event_by_api_id/"+url.PathEscape(apiEventID), nil, nil)
}

func (c *Client) Friends(ctx context.Context) ([]models.Friend, error) {
	var out struct {
		Friends []models.Friend `json:"friends"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/friends", nil, &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// AddFriend links the given username to the current user and returns the
// backend's confirmation message.
func (c *Client) AddFriend(ctx context.Context, username string) (string, error) {
	in := map[string]string{"username": username}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/add_friend", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Profile(ctx context.Context, username string) (models.Profile, error) {
	var out models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+url.PathEscape(username), nil, &out); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}

// RemoveSavedEvent removes a saved event by the backend's own row id
// (not the provider event id).
func (c *Client) RemoveSavedEvent(ctx context.Context, savedEventID string) error {
	return c.doJSON(ctx, http.MethodPost, "/remove_saved_event/"+url.PathEscape(savedEventID), nil, nil)
}

// UpdateProfile sends bio and an optional profile picture as a multipart
// form. Pass picture == nil to update the bio alone.
func (c *Client) UpdateProfile(ctx context.Context, bio string, pictureName string, picture io.Reader) error {
	body, contentType, err := encodeProfileForm(bio, pictureName, picture)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/edit-profile", body, contentType, nil)
}

// SaveLocation reports browser/terminal-derived coordinates.
func (c *Client) SaveLocation(ctx context.Context, lat, lng float64) error {
	in := map[string]float64{"lat": lat, "lng": lng}
	return c.doJSON(ctx, http.MethodPost, "/api/save_location", in, nil)
}
