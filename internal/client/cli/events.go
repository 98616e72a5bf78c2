package cli

import (
	"context"
	"fmt"
)

// Events lists nearby events with a saved mark against each one the current
// user has saved. The saved set is refreshed alongside the list so the marks
// reflect the server, not a stale mirror.
func (a *App) Events(ctx context.Context) error {
	events, err := a.events.List(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	if a.isLoggedIn() {
		if err := a.events.Refresh(ctx); err != nil {
			a.fail(ctx, err)
			return err
		}
	}

	if len(events) == 0 {
		printlnFn("No events found nearby.")
		return nil
	}

	for _, e := range events {
		mark := " "
		if a.events.IsSaved(e.ID) {
			mark = "*"
		}
		when := e.Dates.Start.DateTime
		if when == "" {
			when = "date unknown"
		}
		printlnFn(fmt.Sprintf("[%s] %s  %s @ %s (id %s)", mark, when, e.Name, e.VenueName(), e.ID))
	}
	return nil
}

// Save marks an event as saved. The mark appears immediately and is rolled
// back if the server rejects it.
func (a *App) Save(ctx context.Context, apiEventID string) error {
	if err := a.events.Save(ctx, apiEventID); err != nil {
		a.fail(ctx, err)
		return err
	}
	printlnFn("Saved.")
	return nil
}

// Unsave removes the saved mark; unsaving an unsaved event does nothing.
func (a *App) Unsave(ctx context.Context, apiEventID string) error {
	if err := a.events.Unsave(ctx, apiEventID); err != nil {
		a.fail(ctx, err)
		return err
	}
	printlnFn("Removed.")
	return nil
}
