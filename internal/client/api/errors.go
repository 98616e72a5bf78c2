package api

import "fmt"

// The gateway classifies every failed call into exactly one of three kinds,
// matched by callers with errors.As:
//
//   - *AuthError:      the backend rejected the credential (401/403).
//   - *APIError:       the backend rejected the request semantically.
//   - *TransportError: no response reached the client at all.
//
// The gateway never retries and never clears the credential itself; both
// decisions belong to the caller.

// AuthError reports an authentication failure. The session controller
// escalates it to the Anonymous state.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication failed (status %d)", e.Status)
	}
	return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
}

// APIError reports a non-auth application-level rejection. Message carries
// the backend's {error} body when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return e.Message
}

// TransportError reports that the request never produced a response:
// connection refused, DNS failure, timeout, cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports input the client rejected before any network call,
// e.g. an empty username.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
