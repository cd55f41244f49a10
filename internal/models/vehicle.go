package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DistanceUnit is the unit a vehicle's distances are displayed and entered in.
// Storage is always kilometers.
type DistanceUnit string

const (
	UnitKilometers DistanceUnit = "kilometers"
	UnitMiles      DistanceUnit = "miles"
)

// Abbreviation returns the short label shown next to distances.
func (u DistanceUnit) Abbreviation() string {
	switch u {
	case UnitMiles:
		return "mi"
	default:
		return "km"
	}
}

// ParseDistanceUnit accepts the long and short spellings of a unit.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "km", "kilometers", "kilometres":
		return UnitKilometers, nil
	case "mi", "miles":
		return UnitMiles, nil
	default:
		return "", fmt.Errorf("invalid distance unit %q (expected km or mi)", s)
	}
}

type Vehicle struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	UnitPreference    DistanceUnit `json:"unit_preference"`
	CurrentOdometerKm float64      `json:"current_odometer_km"`
	CreatedAt         time.Time    `json:"created_at"`
}

func (v *Vehicle) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("vehicle name cannot be empty")
	}
	if v.UnitPreference != UnitKilometers && v.UnitPreference != UnitMiles {
		return fmt.Errorf("invalid unit preference %q", v.UnitPreference)
	}
	if math.IsNaN(v.CurrentOdometerKm) || math.IsInf(v.CurrentOdometerKm, 0) || v.CurrentOdometerKm < 0 {
		return fmt.Errorf("odometer must be a non-negative number, got %v", v.CurrentOdometerKm)
	}
	return nil
}
