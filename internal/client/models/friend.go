package models

import "fmt"

// Friend is one entry of the friends collection. Email is present only when
// the backend chooses to expose it.
type Friend struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Key implements syncx.Item. Usernames are unique per account.
func (f Friend) Key() string { return f.Username }

// Label renders the friend for display: "username (email)" or just the
// username when no email is known.
func (f Friend) Label() string {
	if f.Email == "" {
		return f.Username
	}
	return fmt.Sprintf("%s (%s)", f.Username, f.Email)
}
