// Package syncx keeps a local mirror of a server-owned collection in step
// with the backend across optimistic mutations.
//
// # Overview
//
// A Controller holds an ordered mirror of resources keyed by a stable id and
// applies mutations optimistically: the mirror changes first, the network
// call follows, and a failed call rolls the mirror back. The package provides:
//
//  1. The Item constraint (anything with a stable Key).
//  2. Backend, the three callbacks a collection needs: Fetch, Create, Delete.
//  3. Controller, the generic mirror with Load/Add/Remove/Snapshot.
//
// # Consistency rules
//
//   - The mirror never holds two entries with the same key.
//   - After every settled mutation the mirror equals what a fresh Fetch
//     would return under the current identity.
//   - Mutations against the same key are serialized: a second mutation waits
//     for the in-flight one to settle. Mutations on different keys may be in
//     flight concurrently.
//   - Concurrent Loads coalesce to the most recently initiated one; results
//     of stale in-flight fetches are discarded.
//   - After Close, late-arriving completions are ignored instead of being
//     applied to a mirror nobody is looking at.
//
// # Error Handling
//
// Add and Remove return the backend's error after rolling back; Add returns
// ErrDuplicate without touching the network when the key is already present.
// Closed controllers answer ErrClosed. Match with errors.Is.
package syncx
