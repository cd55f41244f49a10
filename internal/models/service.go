package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
)

// ServiceTypeTemplate defines a kind of service and its default intervals.
// A template with neither interval is tracked but never becomes due.
type ServiceTypeTemplate struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	DefaultIntervalDays       *int     `json:"default_interval_days,omitempty"`
	DefaultIntervalDistanceKm *float64 `json:"default_interval_distance_km,omitempty"`
	IsEnabled                 bool     `json:"is_enabled"`
}

func (t *ServiceTypeTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("service type name cannot be empty")
	}
	return validateIntervals(t.DefaultIntervalDays, t.DefaultIntervalDistanceKm)
}

// ReminderRule overrides a template's intervals for one vehicle. When enabled it
// replaces both defaults for that pair; a nil field disables that axis.
type ReminderRule struct {
	ID                 string   `json:"id"`
	VehicleID          string   `json:"vehicle_id"`
	ServiceTypeID      string   `json:"service_type_id"`
	DaysInterval       *int     `json:"days_interval,omitempty"`
	DistanceIntervalKm *float64 `json:"distance_interval_km,omitempty"`
	Enabled            bool     `json:"enabled"`
}

func (r *ReminderRule) Validate() error {
	if r.VehicleID == "" || r.ServiceTypeID == "" {
		return fmt.Errorf("reminder rule must reference a vehicle and a service type")
	}
	return validateIntervals(r.DaysInterval, r.DistanceIntervalKm)
}

// ServiceEvent is one performed service.
type ServiceEvent struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	ServiceTypeID string    `json:"service_type_id"`
	Date          time.Time `json:"date"`
	OdometerKm    float64   `json:"odometer_km"`
	Cost          *float64  `json:"cost,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Photos        [][]byte  `json:"-"`
}

func (e *ServiceEvent) Validate() error {
	if e.VehicleID == "" || e.ServiceTypeID == "" {
		return fmt.Errorf("service event must reference a vehicle and a service type")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("service date cannot be empty")
	}
	if math.IsNaN(e.OdometerKm) || math.IsInf(e.OdometerKm, 0) || e.OdometerKm <= 0 {
		return fmt.Errorf("odometer must be greater than zero")
	}
	if e.Cost != nil && (math.IsNaN(*e.Cost) || *e.Cost < 0) {
		return fmt.Errorf("cost cannot be negative")
	}
	if len(e.Photos) > constants.MaxPhotosPerEvent {
		return fmt.Errorf("at most %d photos can be attached, got %d", constants.MaxPhotosPerEvent, len(e.Photos))
	}
	return nil
}

func validateIntervals(days *int, km *float64) error {
	if days != nil && *days <= 0 {
		return fmt.Errorf("days interval must be positive, got %d", *days)
	}
	if km != nil && (math.IsNaN(*km) || math.IsInf(*km, 0) || *km <= 0) {
		return fmt.Errorf("distance interval must be positive, got %v", *km)
	}
	return nil
}
