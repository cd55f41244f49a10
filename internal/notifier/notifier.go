// Package notifier delivers due alerts to the user through one or more sinks.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// Sink shows or forwards a single alert.
type Sink interface {
	Name() string
	Send(ctx context.Context, alert models.PendingAlert) error
}

// Multi fans an alert out to every sink. It fails only if all sinks fail.
type Multi []Sink

func (m Multi) Name() string { return "multi" }

func (m Multi) Send(ctx context.Context, alert models.PendingAlert) error {
	if len(m) == 0 {
		return errors.New("no notification sinks configured")
	}
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, alert); err != nil {
			logger.Warn("Notification sink failed", "sink", s.Name(), "alert", alert.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	if len(errs) == len(m) {
		return errors.Join(errs...)
	}
	return nil
}

// Retrying retries a sink a fixed number of times with a constant delay.
type Retrying struct {
	Sink     Sink
	Attempts int
	Delay    time.Duration
}

func WithRetry(s Sink) *Retrying {
	return &Retrying{Sink: s, Attempts: constants.NotifyMaxRetries, Delay: constants.NotifyRetryDelay}
}

func (r *Retrying) Name() string { return r.Sink.Name() }

func (r *Retrying) Send(ctx context.Context, alert models.PendingAlert) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = r.Sink.Send(ctx, alert); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.Delay):
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
