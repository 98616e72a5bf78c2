package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) record(name string, args ...string) error {
	call := name
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	s.calls = append(s.calls, call)
	return nil
}

func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }
func (s *stubExec) WhoAmI(ctx context.Context) error   { return s.record("whoami") }
func (s *stubExec) Events(ctx context.Context) error   { return s.record("events") }
func (s *stubExec) Save(ctx context.Context, id string) error {
	return s.record("save", id)
}
func (s *stubExec) Unsave(ctx context.Context, id string) error {
	return s.record("unsave", id)
}
func (s *stubExec) Friends(ctx context.Context) error { return s.record("friends") }
func (s *stubExec) AddFriend(ctx context.Context, username string) error {
	return s.record("addfriend", username)
}
func (s *stubExec) Profile(ctx context.Context, username string) error {
	if username == "" {
		return s.record("profile")
	}
	return s.record("profile", username)
}
func (s *stubExec) RemoveSaved(ctx context.Context, id string) error {
	return s.record("remove", id)
}
func (s *stubExec) EditProfile(ctx context.Context) error { return s.record("editprofile") }
func (s *stubExec) Location(ctx context.Context, lat, lng string) error {
	return s.record("location", lat, lng)
}

func runScript(t *testing.T, a execIface, script string) []string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		line := strings.TrimRight(strings.Join(toStrings(args), " "), "\n")
		out = append(out, line)
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
	return out
}

func toStrings(args []any) []string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprint(a)
	}
	return s
}

func TestREPL_DispatchesCommands(t *testing.T) {
	s := &stubExec{loggedIn: true}

	runScript(t, s, strings.Join([]string{
		"events",
		"save ev1",
		"unsave ev1",
		"friends",
		"addfriend bob",
		"profile bob",
		"profile",
		"remove 7",
		"editprofile",
		"location 40.7 -74.0",
		"whoami",
		"logout",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"events",
		"save ev1",
		"unsave ev1",
		"friends",
		"addfriend bob",
		"profile bob",
		"profile",
		"remove 7",
		"editprofile",
		"location 40.7 -74.0",
		"whoami",
		"logout",
	}, s.calls)
}

func TestREPL_UsageForMissingArgs(t *testing.T) {
	s := &stubExec{loggedIn: true}

	out := runScript(t, s, strings.Join([]string{
		"save",
		"addfriend",
		"location 40.7",
		"exit",
	}, "\n"))

	assert.Empty(t, s.calls)
	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "Usage: save <event id>")
	assert.Contains(t, joined, "Usage: addfriend <username>")
	assert.Contains(t, joined, "Usage: location <lat> <lng>")
}

func TestREPL_UnknownCommand(t *testing.T) {
	s := &stubExec{}
	out := runScript(t, s, "frobnicate\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "Unknown command:")
}

func TestREPL_HelpDependsOnSession(t *testing.T) {
	anon := runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(anon, "\n"), "register, login")

	authed := runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(authed, "\n"), "logout")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "events\n")
	assert.Equal(t, []string{"events"}, s.calls)
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "\n\n   \nexit\n")
	assert.Empty(t, s.calls)
}
