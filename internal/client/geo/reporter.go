// Package geo pushes locally-derived coordinates to the backend. It is a
// fire-and-forget side channel: failures are logged and otherwise ignored,
// and nothing else in the client depends on its outcome.
package geo

import (
	"context"
	"sync"

	"eventtracker/internal/logging"
)

// LocationAPI is the slice of the gateway the reporter needs.
type LocationAPI interface {
	SaveLocation(ctx context.Context, lat, lng float64) error
}

// Reporter sends one-shot location reports in the background.
type Reporter struct {
	api LocationAPI
	log logging.Logger
	wg  sync.WaitGroup
}

func NewReporter(a LocationAPI, log logging.Logger) *Reporter {
	return &Reporter{api: a, log: log.With("component", "geo")}
}

// Report dispatches the coordinates without blocking the caller. The
// backend uses them to scope the events feed; a lost report only means the
// feed stays unscoped until the next one.
func (r *Reporter) Report(ctx context.Context, lat, lng float64) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.api.SaveLocation(ctx, lat, lng); err != nil {
			r.log.Warn(ctx, "location report dropped", "err", err)
			return
		}
		r.log.Debug(ctx, "location reported", "lat", lat, "lng", lng)
	}()
}

// Wait blocks until all dispatched reports have settled.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
