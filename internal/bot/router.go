package bot

import (
	"context"
	"log/slog"
	"sync"
)

// Router fans incoming events out to the flow. Events for different
// users run concurrently; the per-user session lock keeps each user's
// conversation ordered.
type Router struct {
	flow   *Flow
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewRouter creates a router over a flow.
func NewRouter(flow *Flow, logger *slog.Logger) *Router {
	return &Router{flow: flow, logger: logger}
}

// Dispatch handles an event asynchronously.
func (r *Router) Dispatch(ctx context.Context, in *Incoming) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("panic handling event", "user", in.UserID, "panic", rec)
			}
		}()
		if err := r.flow.Handle(ctx, in); err != nil {
			r.logger.Error("event handling failed", "user", in.UserID, "error", err)
		}
	}()
}

// Wait blocks until all dispatched events have been handled.
func (r *Router) Wait() {
	r.wg.Wait()
}
