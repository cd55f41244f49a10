// Package reminder computes which services are due for each vehicle.
//
// Calculate is a pure function over a Snapshot: it performs no I/O, does not
// mutate its inputs and keeps no state between calls, so it is safe to call
// concurrently.
package reminder

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// assessmentNamespace seeds the deterministic assessment IDs.
var assessmentNamespace = uuid.MustParse("6f1c7a52-3d0e-4b8a-9a55-2f0c4d1e7b90")

// Snapshot is a consistent point-in-time read of the four collections.
type Snapshot struct {
	Vehicles  []models.Vehicle
	Templates []models.ServiceTypeTemplate
	Events    []models.ServiceEvent
	Rules     []models.ReminderRule
}

type pairKey struct {
	vehicleID     string
	serviceTypeID string
}

type intervals struct {
	days *int
	km   *float64
}

// Calculate returns one assessment per vehicle and enabled template, ordered
// by status (overdue first) and then by days until due, with assessments that
// have no due date last among their status peers.
func Calculate(s Snapshot, now time.Time) []models.DueAssessment {
	lastEvents := latestEvents(s.Events)
	rules := enabledRules(s.Rules)

	var out []models.DueAssessment
	for _, v := range s.Vehicles {
		for _, t := range s.Templates {
			if !t.IsEnabled {
				continue
			}
			key := pairKey{vehicleID: v.ID, serviceTypeID: t.ID}

			eff := intervals{days: t.DefaultIntervalDays, km: t.DefaultIntervalDistanceKm}
			if r, ok := rules[key]; ok {
				eff = intervals{days: r.DaysInterval, km: r.DistanceIntervalKm}
			}

			var last *models.ServiceEvent
			if e, ok := lastEvents[key]; ok {
				last = &e
			}
			out = append(out, assess(v, t, last, eff, now))
		}
	}

	sortAssessments(out, now)
	return out
}

func assess(v models.Vehicle, t models.ServiceTypeTemplate, last *models.ServiceEvent, eff intervals, now time.Time) models.DueAssessment {
	a := models.DueAssessment{
		ID:          uuid.NewSHA1(assessmentNamespace, []byte(v.ID+"/"+t.ID)).String(),
		Vehicle:     v,
		ServiceType: t,
	}
	if last != nil {
		date := last.Date
		odo := last.OdometerKm
		a.LastServiceDate = &date
		a.LastServiceOdometerKm = &odo
	}

	if days, ok := validDays(eff.days); ok {
		base := v.CreatedAt
		if last != nil {
			base = last.Date
		}
		due := base.AddDate(0, 0, days)
		a.DueDate = &due
	}

	if km, ok := validKm(eff.km); ok {
		base := 0.0
		if last != nil && isFinite(last.OdometerKm) {
			base = last.OdometerKm
		}
		due := base + km
		a.DueOdometerKm = &due
	}

	a.Status = classify(a, now)
	return a
}

func classify(a models.DueAssessment, now time.Time) models.DueStatus {
	if a.IsOverdueByDate(now) || a.IsOverdueByDistance() {
		return models.StatusOverdue
	}
	if d := a.DaysUntilDue(now); d != nil && *d <= constants.DueSoonDays {
		return models.StatusDueSoon
	}
	if d := a.DistanceUntilDueKm(); d != nil && *d <= constants.DueSoonDistanceKm {
		return models.StatusDueSoon
	}
	return models.StatusUpcoming
}

// latestEvents picks the most recent event per pair. Ties on date keep the
// first event seen.
func latestEvents(events []models.ServiceEvent) map[pairKey]models.ServiceEvent {
	latest := make(map[pairKey]models.ServiceEvent, len(events))
	for _, e := range events {
		key := pairKey{vehicleID: e.VehicleID, serviceTypeID: e.ServiceTypeID}
		if cur, ok := latest[key]; !ok || e.Date.After(cur.Date) {
			latest[key] = e
		}
	}
	return latest
}

func enabledRules(rules []models.ReminderRule) map[pairKey]models.ReminderRule {
	out := make(map[pairKey]models.ReminderRule, len(rules))
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		out[pairKey{vehicleID: r.VehicleID, serviceTypeID: r.ServiceTypeID}] = r
	}
	return out
}

func sortAssessments(list []models.DueAssessment, now time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Status != list[j].Status {
			return list[i].Status < list[j].Status
		}
		di, dj := list[i].DaysUntilDue(now), list[j].DaysUntilDue(now)
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
}

// validDays treats nil and non-positive intervals as "no constraint".
func validDays(days *int) (int, bool) {
	if days == nil || *days <= 0 {
		return 0, false
	}
	return *days, true
}

func validKm(km *float64) (float64, bool) {
	if km == nil || !isFinite(*km) || *km <= 0 {
		return 0, false
	}
	return *km, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
