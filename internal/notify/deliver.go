package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// Queue exposes the installed alerts for delivery.
type Queue interface {
	ListPending(ctx context.Context) ([]models.PendingAlert, error)
	RemovePending(ctx context.Context, id string) error
}

// Sender delivers one alert to the user.
type Sender interface {
	Send(ctx context.Context, alert models.PendingAlert) error
}

// Deliver sends every alert whose trigger time has passed and removes it from
// the queue. A failed send leaves the alert queued for the next run. It
// returns the number of alerts delivered.
func Deliver(ctx context.Context, q Queue, s Sender, now time.Time) (int, error) {
	alerts, err := q.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending alerts: %w", err)
	}

	delivered := 0
	var firstErr error
	for _, a := range alerts {
		if !a.IsDue(now) {
			continue
		}
		if err := s.Send(ctx, a); err != nil {
			logger.Warn("Failed to deliver alert", "id", a.ID, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to deliver alert %s: %w", a.ID, err)
			}
			continue
		}
		if err := q.RemovePending(ctx, a.ID); err != nil {
			return delivered, fmt.Errorf("failed to remove delivered alert %s: %w", a.ID, err)
		}
		delivered++
	}
	return delivered, firstErr
}
