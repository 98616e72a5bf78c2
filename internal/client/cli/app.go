// Package cli is the interactive terminal frontend of the Event Tracker
// client. It wires the gateway, session controller and collection services
// together and drives them from a read-eval-print loop.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"eventtracker/internal/client/api"
	"eventtracker/internal/client/config"
	"eventtracker/internal/client/credstore"
	"eventtracker/internal/client/geo"
	"eventtracker/internal/client/models"
	"eventtracker/internal/client/services"
	"eventtracker/internal/client/session"
	"eventtracker/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionController is the slice of the session layer the CLI drives.
type sessionController interface {
	State() session.State
	Identity() (session.Identity, bool)
	Resolve(ctx context.Context) session.State
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	HandleAuthError(ctx context.Context, err error) bool
}

type eventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Refresh(ctx context.Context) error
	Save(ctx context.Context, apiEventID string) error
	Unsave(ctx context.Context, apiEventID string) error
	IsSaved(apiEventID string) bool
}

type friendService interface {
	Load(ctx context.Context) error
	List() []models.Friend
	Add(ctx context.Context, username string) (string, error)
}

type profileService interface {
	Load(ctx context.Context) error
	Profile() models.Profile
	RemoveSaved(ctx context.Context, savedEventID string) error
	Update(ctx context.Context, bio string, pictureName string, picture io.Reader) error
	Username() string
	Close()
}

type locationReporter interface {
	Report(ctx context.Context, lat, lng float64)
}

// App holds the wired client. One instance per process.
type App struct {
	config  *config.Config
	session sessionController
	events  eventService
	friends friendService
	geo     locationReporter
	banner  *Banner
	log     logging.Logger
	reader  *bufio.Reader

	// newProfile builds a per-view profile service; swapped in tests.
	newProfile func(username string) profileService
	// profile is the currently open profile view, nil when none.
	profile profileService
}

// NewApp opens the local store, builds the gateway and assembles the
// services. The session is not resolved here; Run does that first thing.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := credstore.InitDatabase(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}
	store := credstore.NewSQLiteStore(db)

	gateway, err := api.New(c.ServerBaseURL, api.Transport(c.AuthTransport), store, log,
		api.WithTimeout(c.RequestTimeout))
	if err != nil {
		return nil, err
	}

	sess := session.NewController(gateway, store, session.Strategy(c.ResolveStrategy), log)

	app := &App{
		config:  c,
		session: sess,
		geo:     geo.NewReporter(gateway, log),
		banner:  NewBanner(c.BannerTTL),
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(os.Stdin),
	}

	events := services.NewEventService(gateway, func() string {
		id, _ := sess.Identity()
		return id.Username
	})
	friends := services.NewFriendService(gateway)
	app.events = events
	app.friends = friends
	app.newProfile = func(username string) profileService {
		return services.NewProfileService(gateway, username)
	}

	// When the session ends the mirrors hold another user's data; drop them.
	sess.OnSessionEnd(func() {
		events.Discard()
		friends.Discard()
		app.closeProfile()
	})

	return app, nil
}

// Run resolves the stored session and enters the REPL. It returns when the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	state := a.session.Resolve(ctx)
	a.log.Debug(ctx, "session resolved", "state", state.String())

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	a.closeProfile()
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

// status renders the prompt decoration: username when logged in, plus any
// live banner text.
func (a *App) status() string {
	s := ""
	if id, ok := a.session.Identity(); ok {
		s = "(" + id.Username + ")"
	}
	if b := a.banner.Current(); b != "" {
		s = s + " [" + b + "]"
	}
	return s
}

func (a *App) closeProfile() {
	if a.profile != nil {
		a.profile.Close()
		a.profile = nil
	}
}
