package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Profile opens a profile view, the current user's own when username is
// empty. Opening a view closes the previous one so a late response cannot
// paint over the new page.
func (a *App) Profile(ctx context.Context, username string) error {
	if username == "" {
		id, ok := a.session.Identity()
		if !ok {
			printlnFn("Not logged in; use: profile <username>")
			return nil
		}
		username = id.Username
	}

	a.closeProfile()
	a.profile = a.newProfile(username)

	if err := a.profile.Load(ctx); err != nil {
		a.fail(ctx, err)
		return err
	}

	p := a.profile.Profile()
	printlnFn(fmt.Sprintf("Welcome, %s!", p.Username))
	if p.Bio != "" {
		printlnFn(p.Bio)
	}

	if len(p.SavedEvents) == 0 {
		printlnFn("No saved events.")
		return nil
	}
	printlnFn("Saved events:")
	for _, se := range p.SavedEvents {
		line := fmt.Sprintf("  #%d %s", se.SavedEventID, se.Name)
		if se.Location != "" {
			line += " @ " + se.Location
		}
		if se.Date != "" {
			line += " on " + se.Date
		}
		printlnFn(line)
	}
	return nil
}

// RemoveSaved deletes a saved event from the open profile by its row id.
// The row disappears immediately and comes back in place if the server says
// no.
func (a *App) RemoveSaved(ctx context.Context, savedEventID string) error {
	if a.profile == nil {
		printlnFn("Open a profile first.")
		return nil
	}
	if _, err := strconv.ParseInt(savedEventID, 10, 64); err != nil {
		a.banner.Show("Usage: remove <saved event id>")
		return nil
	}
	if err := a.profile.RemoveSaved(ctx, savedEventID); err != nil {
		a.fail(ctx, err)
		return err
	}
	printlnFn("Removed.")
	return nil
}

// EditProfile prompts for a new bio and an optional picture file and submits
// both, then reloads the view.
func (a *App) EditProfile(ctx context.Context) error {
	if a.profile == nil {
		printlnFn("Open your profile first.")
		return nil
	}

	bio, err := getSimpleText(a.reader, "Enter bio", os.Stdout)
	if err != nil {
		return err
	}
	picturePath, err := getSimpleText(a.reader, "Picture file (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	if picturePath == "" {
		if err := a.profile.Update(ctx, bio, "", nil); err != nil {
			a.fail(ctx, err)
			return err
		}
	} else {
		f, err := os.Open(picturePath)
		if err != nil {
			a.banner.Show("Cannot open " + picturePath)
			return err
		}
		defer f.Close()
		if err := a.profile.Update(ctx, bio, filepath.Base(picturePath), f); err != nil {
			a.fail(ctx, err)
			return err
		}
	}

	printlnFn("Profile updated.")
	return a.profile.Load(ctx)
}

// Location parses and reports coordinates. The report is fire and forget;
// a failure only shows up in the logs.
func (a *App) Location(ctx context.Context, latArg, lngArg string) error {
	lat, latErr := strconv.ParseFloat(latArg, 64)
	lng, lngErr := strconv.ParseFloat(lngArg, 64)
	if latErr != nil || lngErr != nil {
		a.banner.Show("Usage: location <lat> <lng>")
		return nil
	}
	a.geo.Report(ctx, lat, lng)
	printlnFn("Location reported.")
	return nil
}
