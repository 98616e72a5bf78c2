package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"eventtracker/internal/client/api"
	"eventtracker/internal/client/models"
	"eventtracker/internal/client/session"
	"eventtracker/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeSession struct {
	state    session.State
	username string

	loginUser, loginPass string
	loginErr             error
	registerErr          error
	logoutCalled         bool
	logoutErr            error
	sessionEnded         bool
}

func (f *fakeSession) State() session.State { return f.state }
func (f *fakeSession) Identity() (session.Identity, bool) {
	return session.Identity{Username: f.username}, f.state == session.StateAuthenticated
}
func (f *fakeSession) Resolve(ctx context.Context) session.State { return f.state }
func (f *fakeSession) Login(ctx context.Context, username, password string) error {
	f.loginUser, f.loginPass = username, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.state = session.StateAuthenticated
	f.username = username
	return nil
}
func (f *fakeSession) Register(ctx context.Context, username, email, password string) error {
	return f.registerErr
}
func (f *fakeSession) Logout(ctx context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.state = session.StateAnonymous
	f.username = ""
	return nil
}
func (f *fakeSession) HandleAuthError(ctx context.Context, err error) bool {
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	f.sessionEnded = true
	f.state = session.StateAnonymous
	f.username = ""
	return true
}

type fakeEvents struct {
	listOut    []models.Event
	listErr    error
	refreshErr error
	saved      map[string]bool
	saveID     string
	saveErr    error
	unsaveID   string
	unsaveErr  error
}

func (f *fakeEvents) List(ctx context.Context) ([]models.Event, error) { return f.listOut, f.listErr }
func (f *fakeEvents) Refresh(ctx context.Context) error               { return f.refreshErr }
func (f *fakeEvents) Save(ctx context.Context, id string) error {
	f.saveID = id
	return f.saveErr
}
func (f *fakeEvents) Unsave(ctx context.Context, id string) error {
	f.unsaveID = id
	return f.unsaveErr
}
func (f *fakeEvents) IsSaved(id string) bool { return f.saved[id] }

type fakeFriends struct {
	loadErr error
	listOut []models.Friend
	addUser string
	addMsg  string
	addErr  error
}

func (f *fakeFriends) Load(ctx context.Context) error { return f.loadErr }
func (f *fakeFriends) List() []models.Friend          { return f.listOut }
func (f *fakeFriends) Add(ctx context.Context, username string) (string, error) {
	f.addUser = username
	return f.addMsg, f.addErr
}

type fakeProfile struct {
	username  string
	loadErr   error
	profile   models.Profile
	removeID  string
	removeErr error
	updateBio string
	updateErr error
	closed    bool
}

func (f *fakeProfile) Load(ctx context.Context) error { return f.loadErr }
func (f *fakeProfile) Profile() models.Profile        { return f.profile }
func (f *fakeProfile) RemoveSaved(ctx context.Context, id string) error {
	f.removeID = id
	return f.removeErr
}
func (f *fakeProfile) Update(ctx context.Context, bio string, name string, pic io.Reader) error {
	f.updateBio = bio
	return f.updateErr
}
func (f *fakeProfile) Username() string { return f.username }
func (f *fakeProfile) Close()           { f.closed = true }

type fakeGeo struct {
	lat, lng float64
	calls    int
}

func (f *fakeGeo) Report(ctx context.Context, lat, lng float64) {
	f.calls++
	f.lat, f.lng = lat, lng
}

func newTestApp(fs *fakeSession, fe *fakeEvents, ff *fakeFriends, fp *fakeProfile, lines ...string) *App {
	return &App{
		session: fs,
		events:  fe,
		friends: ff,
		geo:     &fakeGeo{},
		banner:  NewBanner(time.Minute),
		log:     discardLogger(),
		reader:  readerFromLines(lines...),
		newProfile: func(username string) profileService {
			fp.username = username
			return fp
		},
	}
}

func stubInput(t *testing.T, texts []string, password string) {
	t.Helper()
	origText, origPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPw })

	i := 0
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(w io.Writer) (string, error) { return password, nil }
}

// ------------ tests ------------

func TestLogin_Success(t *testing.T) {
	out := captureOutput(t)
	fs := &fakeSession{state: session.StateAnonymous}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})
	stubInput(t, []string{"alice"}, "pw")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "alice", fs.loginUser)
	assert.Equal(t, "pw", fs.loginPass)
	assert.Contains(t, *out, "Welcome, alice!")
}

func TestLogin_InvalidCredentialsShownAsBanner(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAnonymous, loginErr: session.ErrInvalidCredentials}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})
	stubInput(t, []string{"alice"}, "wrong")

	err := app.Login(context.Background())

	require.Error(t, err)
	assert.Equal(t, "invalid username or password", app.banner.Current())
}

func TestRegister_SuccessReferstoLogin(t *testing.T) {
	out := captureOutput(t)
	fs := &fakeSession{state: session.StateAnonymous}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})
	stubInput(t, []string{"bob", "bob@example.com"}, "pw")

	require.NoError(t, app.Register(context.Background()))

	assert.Contains(t, *out, "Account created, you can now log in.")
	assert.Equal(t, session.StateAnonymous, fs.state)
}

func TestRegister_BackendMessageShownVerbatim(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{
		state:       session.StateAnonymous,
		registerErr: &api.APIError{Status: 400, Message: "Username already exists"},
	}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})
	stubInput(t, []string{"bob", "bob@example.com"}, "pw")

	err := app.Register(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Username already exists", app.banner.Current())
}

func TestEvents_ListsWithSavedMarks(t *testing.T) {
	out := captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fe := &fakeEvents{
		listOut: []models.Event{
			{ID: "ev1", Name: "Concert", Embedded: models.EventEmbedded{Venues: []models.Venue{{Name: "Arena"}}}},
			{ID: "ev2", Name: "Game"},
		},
		saved: map[string]bool{"ev1": true},
	}
	app := newTestApp(fs, fe, &fakeFriends{}, &fakeProfile{})

	require.NoError(t, app.Events(context.Background()))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "[*]")
	assert.Contains(t, joined, "Concert")
	assert.Contains(t, joined, "Arena")
	assert.Contains(t, joined, "Unknown location")
}

func TestEvents_AuthFailureEndsSession(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fe := &fakeEvents{listErr: &api.AuthError{Status: 401}}
	app := newTestApp(fs, fe, &fakeFriends{}, &fakeProfile{})

	err := app.Events(context.Background())

	require.Error(t, err)
	assert.True(t, fs.sessionEnded)
	assert.Equal(t, "Session expired, please log in again", app.banner.Current())
}

func TestSave_ErrorShowsBanner(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fe := &fakeEvents{saveErr: &api.APIError{Status: 500, Message: "Failed to save event"}}
	app := newTestApp(fs, fe, &fakeFriends{}, &fakeProfile{})

	err := app.Save(context.Background(), "ev1")

	require.Error(t, err)
	assert.Equal(t, "ev1", fe.saveID)
	assert.Equal(t, "Failed to save event", app.banner.Current())
}

func TestAddFriend_MessageBecomesBanner(t *testing.T) {
	captureOutput(t)
	ff := &fakeFriends{addMsg: "Friend added!"}
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	app := newTestApp(fs, &fakeEvents{}, ff, &fakeProfile{})

	require.NoError(t, app.AddFriend(context.Background(), "bob"))

	assert.Equal(t, "bob", ff.addUser)
	assert.Equal(t, "Friend added!", app.banner.Current())
}

func TestFriends_ListsLabels(t *testing.T) {
	out := captureOutput(t)
	ff := &fakeFriends{listOut: []models.Friend{{Username: "bob", Email: "bob@example.com"}}}
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	app := newTestApp(fs, &fakeEvents{}, ff, &fakeProfile{})

	require.NoError(t, app.Friends(context.Background()))

	assert.Contains(t, strings.Join(*out, "\n"), "bob (bob@example.com)")
}

func TestProfile_OwnProfileShowsWelcomeAndSavedEvents(t *testing.T) {
	out := captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fp := &fakeProfile{profile: models.Profile{
		Username: "alice",
		Bio:      "hi there",
		SavedEvents: []models.SavedEvent{
			{SavedEventID: 7, Name: "Concert", Location: "Arena", Date: "2026-09-10"},
		},
	}}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, fp)

	require.NoError(t, app.Profile(context.Background(), ""))

	assert.Equal(t, "alice", fp.username)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Welcome, alice!")
	assert.Contains(t, joined, "#7 Concert @ Arena on 2026-09-10")
}

func TestProfile_OpeningNewViewClosesPrevious(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fp := &fakeProfile{profile: models.Profile{Username: "bob"}}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, fp)

	require.NoError(t, app.Profile(context.Background(), "bob"))
	first := app.profile
	require.NoError(t, app.Profile(context.Background(), "carol"))

	assert.True(t, first.(*fakeProfile).closed)
}

func TestRemoveSaved(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		wantCalled string
	}{
		{"numeric id forwarded", "7", "7"},
		{"non-numeric rejected locally", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
			fp := &fakeProfile{profile: models.Profile{Username: "alice"}}
			app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, fp)
			require.NoError(t, app.Profile(context.Background(), ""))

			_ = app.RemoveSaved(context.Background(), tt.arg)

			assert.Equal(t, tt.wantCalled, fp.removeID)
		})
	}
}

func TestEditProfile_BioOnly(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	fp := &fakeProfile{profile: models.Profile{Username: "alice"}}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, fp)
	require.NoError(t, app.Profile(context.Background(), ""))
	stubInput(t, []string{"new bio", ""}, "")

	require.NoError(t, app.EditProfile(context.Background()))

	assert.Equal(t, "new bio", fp.updateBio)
}

func TestLocation(t *testing.T) {
	captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})
	g := app.geo.(*fakeGeo)

	require.NoError(t, app.Location(context.Background(), "40.7", "-74.0"))
	assert.Equal(t, 1, g.calls)
	assert.InDelta(t, 40.7, g.lat, 1e-9)
	assert.InDelta(t, -74.0, g.lng, 1e-9)

	require.NoError(t, app.Location(context.Background(), "x", "y"))
	assert.Equal(t, 1, g.calls)
	assert.Equal(t, "Usage: location <lat> <lng>", app.banner.Current())
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})

	require.NoError(t, app.Logout(context.Background()))

	assert.True(t, fs.logoutCalled)
	assert.Contains(t, *out, "Logged out.")
}

func TestStatus(t *testing.T) {
	fs := &fakeSession{state: session.StateAuthenticated, username: "alice"}
	app := newTestApp(fs, &fakeEvents{}, &fakeFriends{}, &fakeProfile{})

	assert.Equal(t, "(alice)", app.status())

	app.banner.Show("Friend added!")
	assert.Equal(t, "(alice) [Friend added!]", app.status())

	fs.state = session.StateAnonymous
	app.banner.Clear()
	assert.Equal(t, "", app.status())
}
