package cli

import (
	"sync"
	"time"
)

// now is a test seam for banner expiry.
var now = time.Now

// Banner holds one transient user-facing message at a time. A new message
// replaces the previous one, and every message expires on its own after the
// configured TTL; no dismissal step is needed.
type Banner struct {
	ttl time.Duration

	mu       sync.Mutex
	text     string
	deadline time.Time
}

func NewBanner(ttl time.Duration) *Banner {
	return &Banner{ttl: ttl}
}

// Show replaces the current message and restarts its lifetime.
func (b *Banner) Show(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.deadline = now().Add(b.ttl)
}

// Current returns the live message, or "" when none is set or the last one
// has expired.
func (b *Banner) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text == "" || now().After(b.deadline) {
		return ""
	}
	return b.text
}

// Clear drops the message immediately.
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
}
