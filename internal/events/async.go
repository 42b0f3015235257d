package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/middleware"
)

const defaultHandlerTimeout = 15 * time.Second

// AsyncDispatcher runs the handler on its own goroutine, detached from the
// caller's cancellation.
type AsyncDispatcher struct {
	handler Handler
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewAsyncDispatcher creates an in-process dispatcher.
func NewAsyncDispatcher(handler Handler, timeout time.Duration) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &AsyncDispatcher{handler: handler, timeout: timeout}
}

var _ Dispatcher = (*AsyncDispatcher)(nil)

// Dispatch schedules evt and returns immediately.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, evt Event) {
	runCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(runCtx, d.timeout)
		defer cancel()

		if err := runHandler(ctx, d.handler, evt); err != nil {
			middleware.GetLoggerFromCtx(ctx).ErrorContext(ctx, "Side effect failed",
				slog.String("event_type", string(evt.Type)),
				slog.Int64("workspace_id", evt.WorkspaceID),
				slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until every dispatched event has finished.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}

// runHandler invokes h and converts a panic into an error.
func runHandler(ctx context.Context, h Handler, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s handler: %v", evt.Type, r)
		}
	}()
	return h.Handle(ctx, evt)
}
