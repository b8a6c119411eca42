package notifications

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mymark/internal/review"
)

// Dispatcher adapts a Service to the review engine's Notifier contract.
// Every delivery runs on its own goroutine with its own timeout; the
// engine's state never depends on the outcome.
type Dispatcher struct {
	service Service
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher wraps a Service for fire-and-forget delivery.
func NewDispatcher(service Service, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{service: service, timeout: timeout, logger: logger}
}

// MatchResolved implements review.Notifier.
func (d *Dispatcher) MatchResolved(item review.MatchItem, disposition review.Disposition) {
	d.dispatch("match_resolved", func(ctx context.Context) error {
		return d.service.NotifyMatchResolved(ctx, item, disposition)
	})
}

// SessionComplete sends the end-of-queue summary.
func (d *Dispatcher) SessionComplete(subject string, resolved int) {
	d.dispatch("session_complete", func(ctx context.Context) error {
		return d.service.NotifySessionComplete(ctx, subject, resolved)
	})
}

// Wait blocks until all in-flight deliveries have finished. The CLI calls
// it before exiting so pending sends are not cut off mid-request.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(event string, send func(context.Context) error) {
	requestID := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := send(ctx); err != nil {
			// Best effort only: log and move on, no retry.
			d.logger.Warn("notification delivery failed",
				slog.String("event", event),
				slog.String("request", requestID),
				slog.Any("error", err))
			return
		}
		d.logger.Debug("notification delivered",
			slog.String("event", event),
			slog.String("request", requestID))
	}()
}
