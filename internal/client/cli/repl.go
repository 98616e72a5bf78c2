package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Events(ctx context.Context) error
	Save(ctx context.Context, apiEventID string) error
	Unsave(ctx context.Context, apiEventID string) error
	Friends(ctx context.Context) error
	AddFriend(ctx context.Context, username string) error
	Profile(ctx context.Context, username string) error
	RemoveSaved(ctx context.Context, savedEventID string) error
	EditProfile(ctx context.Context) error
	Location(ctx context.Context, latArg, lngArg string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers surface
// their own errors through the banner. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("et%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: events, save <id>, unsave <id>, friends, addfriend <user>, profile [user], remove <id>, editprofile, location <lat> <lng>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, events, profile <user>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "e", "events":
			_ = a.Events(ctx)

		case "save":
			if len(args) == 0 {
				printlnFn("Usage: save <event id>")
				continue
			}
			_ = a.Save(ctx, args[0])

		case "unsave":
			if len(args) == 0 {
				printlnFn("Usage: unsave <event id>")
				continue
			}
			_ = a.Unsave(ctx, args[0])

		case "f", "friends":
			_ = a.Friends(ctx)

		case "addfriend":
			if len(args) == 0 {
				printlnFn("Usage: addfriend <username>")
				continue
			}
			_ = a.AddFriend(ctx, args[0])

		case "profile":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			_ = a.Profile(ctx, username)

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <saved event id>")
				continue
			}
			_ = a.RemoveSaved(ctx, args[0])

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "location":
			if len(args) < 2 {
				printlnFn("Usage: location <lat> <lng>")
				continue
			}
			_ = a.Location(ctx, args[0], args[1])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
