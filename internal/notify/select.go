// Package notify decides which due services to alert on and when, and keeps
// the pending alert set in sync with the current assessments.
package notify

import (
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// Select returns at most constants.MaxNotifications assessments worth alerting
// on, preserving the input order.
func Select(assessments []models.DueAssessment, now time.Time) []models.DueAssessment {
	var out []models.DueAssessment
	for _, a := range assessments {
		if len(out) == constants.MaxNotifications {
			break
		}
		if ShouldNotify(a, now) {
			out = append(out, a)
		}
	}
	return out
}

// ShouldNotify reports whether a is urgent enough to alert on. Overdue and
// due-soon services always qualify; upcoming ones only inside the notify windows.
func ShouldNotify(a models.DueAssessment, now time.Time) bool {
	if a.Status == models.StatusOverdue || a.Status == models.StatusDueSoon {
		return true
	}
	if d := a.DaysUntilDue(now); d != nil && *d <= constants.NotifyUpcomingDays {
		return true
	}
	if d := a.DistanceUntilDueKm(); d != nil && *d <= constants.NotifyUpcomingDistanceKm {
		return true
	}
	return false
}
