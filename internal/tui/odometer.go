package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

type OdometerFormModel struct {
	Value string
}

// ParseOdometer reads a reading typed in the vehicle's display unit and
// returns it in kilometers. Zero is allowed, negative values are not.
func ParseOdometer(input string, unit models.DistanceUnit) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("please enter a valid number")
	}
	if value < 0 {
		return 0, fmt.Errorf("odometer cannot be negative")
	}
	return units.ToStoredValue(value, unit), nil
}

func newOdometerForm(v models.Vehicle, data *OdometerFormModel) *huh.Form {
	unit := v.UnitPreference
	data.Value = strconv.FormatFloat(units.ToDisplayValue(v.CurrentOdometerKm, unit), 'f', 0, 64)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Current odometer for %s (%s)", v.Name, unit.Abbreviation())).
				Description("Currently " + units.FormatDistance(v.CurrentOdometerKm, unit, 0)).
				Value(&data.Value).
				Validate(func(s string) error {
					_, err := ParseOdometer(s, unit)
					return err
				}),
		),
	).WithShowHelp(false)
}
