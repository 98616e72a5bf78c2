// Package credstore persists the current identity token across process
// restarts. It is the single process-wide credential slot: the session
// controller writes it, the request gateway reads it.
package credstore

import (
	"context"
	"sync"
)

// Store holds at most one credential.
//
// Contract:
//   - Save: persist the credential, replacing any previous one.
//   - Load: return the stored credential, or "" when absent. A corrupt or
//     unreadable stored value is indistinguishable from an absent one;
//     Load never fails.
//   - Clear: remove the credential. Clearing an empty store is a no-op.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) string
	Clear(ctx context.Context) error
}

// Memory is an in-process Store for tests and for the cookie transport,
// where the credential lives in the HTTP cookie jar instead.
type Memory struct {
	mu    sync.Mutex
	token string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Load(_ context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
