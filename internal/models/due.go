package models

import (
	"fmt"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/utils"
)

// DueStatus is the urgency tier of a due service. Lower values are more urgent.
type DueStatus int

const (
	StatusOverdue DueStatus = iota
	StatusDueSoon
	StatusUpcoming
)

func (s DueStatus) String() string {
	switch s {
	case StatusOverdue:
		return "overdue"
	case StatusDueSoon:
		return "dueSoon"
	case StatusUpcoming:
		return "upcoming"
	default:
		return fmt.Sprintf("DueStatus(%d)", int(s))
	}
}

// Label is the human-readable form used in listings.
func (s DueStatus) Label() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusDueSoon:
		return "Due soon"
	default:
		return "Upcoming"
	}
}

func (s DueStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DueAssessment is the derived due state of one (vehicle, service type) pair.
// It is recomputed on every pass and never persisted.
type DueAssessment struct {
	ID                    string              `json:"id"`
	Vehicle               Vehicle             `json:"vehicle"`
	ServiceType           ServiceTypeTemplate `json:"service_type"`
	LastServiceDate       *time.Time          `json:"last_service_date,omitempty"`
	LastServiceOdometerKm *float64            `json:"last_service_odometer_km,omitempty"`
	DueDate               *time.Time          `json:"due_date,omitempty"`
	DueOdometerKm         *float64            `json:"due_odometer_km,omitempty"`
	Status                DueStatus           `json:"status"`
}

// DaysUntilDue returns whole calendar days from now to the due date, negative
// once the date has passed. Nil when there is no date criterion.
func (a DueAssessment) DaysUntilDue(now time.Time) *int {
	if a.DueDate == nil {
		return nil
	}
	days := utils.DaysBetween(now, *a.DueDate)
	return &days
}

// DistanceUntilDueKm returns the kilometers left before the due odometer.
// Nil when there is no distance criterion.
func (a DueAssessment) DistanceUntilDueKm() *float64 {
	if a.DueOdometerKm == nil {
		return nil
	}
	d := *a.DueOdometerKm - a.Vehicle.CurrentOdometerKm
	return &d
}

func (a DueAssessment) IsOverdueByDate(now time.Time) bool {
	return a.DueDate != nil && a.DueDate.Before(now)
}

func (a DueAssessment) IsOverdueByDistance() bool {
	return a.DueOdometerKm != nil && a.Vehicle.CurrentOdometerKm >= *a.DueOdometerKm
}

// AlertID identifies the alert for this pair so rescheduling replaces it.
func (a DueAssessment) AlertID() string {
	return AlertIDFor(a.Vehicle.ID, a.ServiceType.ID)
}

func AlertIDFor(vehicleID, serviceTypeID string) string {
	return fmt.Sprintf("service-%s-%s", vehicleID, serviceTypeID)
}
