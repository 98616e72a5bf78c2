package syncx

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrDuplicate is returned by Add when the key is already mirrored.
	// The backend is not called in that case.
	ErrDuplicate = errors.New("item already present")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("controller closed")
)

// Item is a resource with a stable identifier, unique within its collection.
type Item interface {
	Key() string
}

// Backend supplies the network operations for one collection. Fetch returns
// the authoritative state; Create returns the server-confirmed item, which
// may carry a different key or extra fields compared to the optimistic one.
type Backend[T Item] struct {
	Fetch  func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, item T) (T, error)
	Delete func(ctx context.Context, id string) error
}

// Controller owns the local mirror of one server-side collection.
// All methods are safe for concurrent use.
type Controller[T Item] struct {
	mu      sync.Mutex
	backend Backend[T]
	items   []T
	pending map[string]chan struct{}
	loadSeq uint64
	gen     uint64
	closed  bool
}

func NewController[T Item](backend Backend[T]) *Controller[T] {
	return &Controller[T]{
		backend: backend,
		pending: make(map[string]chan struct{}),
	}
}

// Load fetches the authoritative collection and replaces the mirror
// wholesale. When several loads overlap, only the most recently initiated
// one is applied; earlier in-flight results are dropped on arrival.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	items, err := c.backend.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.loadSeq {
		// A newer load was initiated (or the mirror is gone); this result
		// is stale and must not win.
		return nil
	}
	if err != nil {
		return err
	}
	c.items = dedupe(items)
	return nil
}

// Add appends item optimistically and dispatches the create call. On success
// the provisional entry is reconciled with the server-confirmed item; on
// failure it is removed again and the error returned. A key that is already
// present (or has a pending add) is rejected locally with ErrDuplicate.
func (c *Controller[T]) Add(ctx context.Context, item T) error {
	id := item.Key()

	c.mu.Lock()
	if err := c.acquire(ctx, id); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.indexOf(id) >= 0 {
		c.release(id)
		c.mu.Unlock()
		return ErrDuplicate
	}
	c.items = append(c.items, item)
	gen := c.gen
	c.mu.Unlock()

	confirmed, err := c.backend.Create(ctx, item)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.release(id)
	if c.closed || gen != c.gen {
		// The mirror was discarded while the create was in flight; neither
		// the rollback nor the confirmed item may touch the new mirror.
		return err
	}
	if err != nil {
		if i := c.indexOf(id); i >= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return err
	}
	c.reconcile(id, confirmed)
	return nil
}

// Remove deletes the entry with the given key optimistically. Removing an
// absent key is a no-op, not an error. On failure the entry is reinserted at
// its prior position.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	if err := c.acquire(ctx, id); err != nil {
		c.mu.Unlock()
		return err
	}
	pos := c.indexOf(id)
	if pos < 0 {
		c.release(id)
		c.mu.Unlock()
		return nil
	}
	removed := c.items[pos]
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	gen := c.gen
	c.mu.Unlock()

	err := c.backend.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.release(id)
	if c.closed || gen != c.gen {
		// The mirror was discarded while the delete was in flight; a failed
		// call must not reinsert the old entry into the new mirror.
		return err
	}
	if err != nil {
		if c.indexOf(id) < 0 {
			if pos > len(c.items) {
				pos = len(c.items)
			}
			c.items = append(c.items[:pos], append([]T{removed}, c.items[pos:]...)...)
		}
		return err
	}
	return nil
}

// Snapshot returns a copy of the current mirror.
func (c *Controller[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Contains reports whether the mirror currently holds the key.
func (c *Controller[T]) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(id) >= 0
}

// Len returns the mirror size.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Reset discards the mirror but keeps the controller usable, e.g. after the
// session ends. In-flight loads and mutations are invalidated: their late
// completions leave the fresh mirror untouched.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loadSeq++
	c.gen++
}

// Close discards the mirror permanently. Late completions of in-flight
// mutations are ignored rather than applied.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = nil
}

// acquire blocks until no mutation is pending for id, then marks id as
// pending. Callers hold c.mu; the lock is dropped while waiting.
func (c *Controller[T]) acquire(ctx context.Context, id string) error {
	for {
		if c.closed {
			return ErrClosed
		}
		ch, busy := c.pending[id]
		if !busy {
			c.pending[id] = make(chan struct{})
			return nil
		}
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			c.mu.Lock()
			return ctx.Err()
		}
		c.mu.Lock()
	}
}

// release settles the pending mutation for id and wakes any waiters.
// Callers hold c.mu.
func (c *Controller[T]) release(id string) {
	if ch, ok := c.pending[id]; ok {
		close(ch)
		delete(c.pending, id)
	}
}

// reconcile swaps the provisional entry for the server-confirmed one. When
// the server assigned a key that already exists elsewhere in the mirror, the
// provisional entry is dropped instead, keeping keys unique.
func (c *Controller[T]) reconcile(provisionalID string, confirmed T) {
	i := c.indexOf(provisionalID)
	if i < 0 {
		// A load replaced the mirror while the create was in flight. The
		// confirmed item is still part of the collection; append it unless
		// the load already brought it in.
		if c.indexOf(confirmed.Key()) < 0 {
			c.items = append(c.items, confirmed)
		}
		return
	}
	if confirmed.Key() != provisionalID && c.indexOf(confirmed.Key()) >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return
	}
	c.items[i] = confirmed
}

func (c *Controller[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}

func dedupe[T Item](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item.Key()]; ok {
			continue
		}
		seen[item.Key()] = struct{}{}
		out = append(out, item)
	}
	return out
}
