package notify

import (
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// Policy holds the local wall-clock time alerts with a due date fire at.
type Policy struct {
	Location   *time.Location
	FireHour   int
	FireMinute int
}

// DefaultPolicy fires at 09:00 in the system timezone.
func DefaultPolicy() Policy {
	return Policy{
		Location:   time.Local,
		FireHour:   constants.DefaultFireHour,
		FireMinute: constants.DefaultFireMinute,
	}
}

// PolicyFromSettings builds a Policy from stored settings. An invalid timezone
// falls back to the system timezone.
func PolicyFromSettings(s models.Settings, loc *time.Location) Policy {
	if loc == nil {
		loc = time.Local
	}
	return Policy{Location: loc, FireHour: s.FireHour, FireMinute: s.FireMinute}
}

// TriggerTime returns when the alert for a should fire.
//
//   - overdue: near-immediately
//   - due date in the future: FireHour:FireMinute local time on the due date
//   - due date already passed: near-immediately
//   - no due date, within constants.NotifyImmediateDistanceKm: near-immediately
//   - otherwise: after constants.FallbackDelay
//
// A fire time on the due date that is already behind now is pulled forward to
// near-immediately so the alert is not lost.
func (p Policy) TriggerTime(a models.DueAssessment, now time.Time) time.Time {
	soon := now.Add(constants.ImmediateDelay)

	if a.Status == models.StatusOverdue {
		return soon
	}

	if a.DueDate != nil {
		if a.DueDate.Before(now) {
			return soon
		}
		loc := p.Location
		if loc == nil {
			loc = time.Local
		}
		y, m, d := a.DueDate.In(loc).Date()
		fire := time.Date(y, m, d, p.FireHour, p.FireMinute, 0, 0, loc)
		if fire.Before(soon) {
			return soon
		}
		return fire
	}

	if dist := a.DistanceUntilDueKm(); dist != nil && *dist <= constants.NotifyImmediateDistanceKm {
		return soon
	}

	return now.Add(constants.FallbackDelay)
}
