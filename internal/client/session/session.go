// Package session owns the client's identity: it resolves who is logged in,
// holds the single writable reference to the credential store, and tells
// dependent controllers when the session ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"eventtracker/internal/client/api"
	"eventtracker/internal/client/credstore"
	"eventtracker/internal/logging"

	"github.com/golang-jwt/jwt/v5"
)

// State is the controller's position in the Unknown → Authenticated/Anonymous
// machine. The controller starts Unknown and never returns to it.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Identity is the resolved owner of the current credential.
type Identity struct {
	Username string
}

// Strategy selects how a stored credential is turned into an Identity.
// Both are configurations of the same contract, fixed at construction.
type Strategy string

const (
	// ResolveLocal decodes the token payload without a network round trip.
	ResolveLocal Strategy = "local"
	// ResolveServer asks GET /check-auth who the credential belongs to.
	ResolveServer Strategy = "server"
)

// nowFn is a test seam for expiry checks.
var nowFn = time.Now

// ErrInvalidCredentials is the uniform login failure: it deliberately does
// not reveal whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrRegistrationFailed is the fallback when the backend rejected a
// registration without a usable message.
var ErrRegistrationFailed = errors.New("registration failed, please try again")

// Authenticator is the slice of the gateway the controller needs.
type Authenticator interface {
	CheckAuth(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
}

// Controller resolves and owns the session.
//
// Contract:
//   - Resolve: establish Authenticated or Anonymous from the stored
//     credential; every failure resolves to Anonymous.
//   - Login: authenticate, persist the returned credential, enter
//     Authenticated.
//   - Register: create an account; success does not establish a session.
//   - Logout: clear the credential, notify listeners, enter Anonymous.
//   - HandleAuthError: escalation point for gateway auth failures.
//
// The controller is the only writer of the credential store.
type Controller struct {
	api      Authenticator
	store    credstore.Store
	strategy Strategy
	log      logging.Logger

	mu        sync.Mutex
	state     State
	identity  Identity
	listeners []func()
}

func NewController(a Authenticator, store credstore.Store, strategy Strategy, log logging.Logger) *Controller {
	return &Controller{
		api:      a,
		store:    store,
		strategy: strategy,
		log:      log.With("component", "session"),
		state:    StateUnknown,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the resolved identity; ok is false unless Authenticated.
func (c *Controller) Identity() (Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity, c.state == StateAuthenticated
}

// OnSessionEnd registers fn to run whenever the session transitions to
// Anonymous from Authenticated; sync controllers use it to discard mirrors.
func (c *Controller) OnSessionEnd(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Resolve establishes the session from the stored credential. An absent
// credential resolves to Anonymous without touching the network. A decode
// failure, an identity-check rejection and an unreachable server all resolve
// to Anonymous alike: this layer fails toward the logged-out view.
func (c *Controller) Resolve(ctx context.Context) State {
	token := c.store.Load(ctx)
	if token == "" {
		return c.toAnonymous(false)
	}

	var username string
	var err error
	switch c.strategy {
	case ResolveServer:
		username, err = c.api.CheckAuth(ctx)
	default:
		username, err = decodeUsername(token)
	}
	if err != nil || username == "" {
		c.log.Debug(ctx, "identity resolution failed", "strategy", string(c.strategy), "err", err)
		return c.toAnonymous(false)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.identity = Identity{Username: username}
	c.mu.Unlock()
	return StateAuthenticated
}

// Login authenticates against the backend and persists the returned
// credential. Authentication rejections collapse into ErrInvalidCredentials.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return &api.ValidationError{Message: "username and password are required"}
	}

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		var authErr *api.AuthError
		var apiErr *api.APIError
		if errors.As(err, &authErr) || (errors.As(err, &apiErr) && apiErr.Status < 500) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("login: %w", err)
	}

	if resp.Token != "" {
		if err := c.store.Save(ctx, resp.Token); err != nil {
			return fmt.Errorf("persisting credential: %w", err)
		}
	}

	if resp.Username == "" {
		resp.Username = username
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.identity = Identity{Username: resp.Username}
	c.mu.Unlock()

	c.log.Info(ctx, "logged in", "username", resp.Username)
	return nil
}

// Register creates an account. The backend's validation message is returned
// verbatim; a rejection without a message becomes ErrRegistrationFailed.
// Success refers the user to login, it does not start a session.
func (c *Controller) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return &api.ValidationError{Message: "username, email and password are required"}
	}

	err := c.api.Register(ctx, username, email, password)
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return ErrRegistrationFailed
		}
		return apiErr
	}
	return fmt.Errorf("register: %w", err)
}

// Logout ends the session: best-effort server-side logout, credential wipe,
// listener notification, Anonymous.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.api.Logout(ctx); err != nil {
		// The local session ends regardless of whether the server heard us.
		c.log.Warn(ctx, "server-side logout failed", "err", err)
	}
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	c.toAnonymous(true)
	return nil
}

// HandleAuthError inspects err and, when it is an authentication failure
// surfaced by the gateway, drops the session to Anonymous (wiping the
// credential and notifying listeners). Reports whether it did so.
func (c *Controller) HandleAuthError(ctx context.Context, err error) bool {
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	c.log.Info(ctx, "credential rejected, ending session", "status", authErr.Status)
	if clearErr := c.store.Clear(ctx); clearErr != nil {
		c.log.Warn(ctx, "credential wipe failed", "err", clearErr)
	}
	c.toAnonymous(true)
	return true
}

// toAnonymous transitions to Anonymous and, when notify is set, runs the
// session-end listeners outside the lock.
func (c *Controller) toAnonymous(notify bool) State {
	c.mu.Lock()
	c.state = StateAnonymous
	c.identity = Identity{}
	listeners := c.listeners
	c.mu.Unlock()

	if notify {
		for _, fn := range listeners {
			fn()
		}
	}
	return StateAnonymous
}

// decodeUsername extracts the identity from a JWT payload without verifying
// the signature; the server remains the authority, this is only the local
// resolution strategy. The username claim is preferred, the registered
// subject is the fallback.
func decodeUsername(token string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decoding token: %w", err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Time.Before(nowFn()) {
		return "", errors.New("token expired")
	}

	if username, ok := claims["username"].(string); ok && username != "" {
		return username, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", errors.New("no identity claim")
}
