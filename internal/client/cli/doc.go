// Package cli provides the interactive Event Tracker command-line client.
//
// It wires configuration, the local credential store, the HTTP gateway, the
// session controller and the collection services into a REPL. Typical flow:
// resolve the stored session, then execute user commands against the live
// session state.
//
// Key features:
//   - Login / Register / Logout with a persisted credential
//   - Nearby events list with optimistic save/unsave marks
//   - Friends list with optimistic add
//   - Profile views with saved-event removal and profile editing
//   - Background location reporting
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
