package models

import (
	"fmt"
	"time"
)

// PendingAlert is an alert installed in the alerting facility, waiting for its
// trigger time.
type PendingAlert struct {
	ID            string    `json:"id"` // service-<vehicleID>-<serviceTypeID>
	VehicleID     string    `json:"vehicle_id"`
	ServiceTypeID string    `json:"service_type_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Category      string    `json:"category"`
	FireAt        time.Time `json:"fire_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (a *PendingAlert) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("alert id cannot be empty")
	}
	if a.Title == "" {
		return fmt.Errorf("alert title cannot be empty")
	}
	if a.FireAt.IsZero() {
		return fmt.Errorf("alert trigger time cannot be empty")
	}
	return nil
}

// IsDue reports whether the alert should be delivered at now.
func (a *PendingAlert) IsDue(now time.Time) bool {
	return !a.FireAt.After(now)
}

// Text joins title and body for sinks that carry a single string.
func (a *PendingAlert) Text() string {
	if a.Body == "" {
		return a.Title
	}
	return a.Title + "\n" + a.Body
}
