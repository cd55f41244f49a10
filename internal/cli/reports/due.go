package reports

import (
	"encoding/json"
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

// DueCmd prints the Up Next list: every enabled service per vehicle, most
// urgent first. It also reschedules alerts from the fresh assessments.
type DueCmd struct {
	Vehicle string `help:"Only show services for this vehicle."`
	JSON    bool   `help:"Print assessments as JSON."`
}

func (c *DueCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Resync()
	if err != nil {
		return err
	}
	list := res.Assessments
	if c.Vehicle != "" {
		v, err := ctx.FindVehicle(c.Vehicle)
		if err != nil {
			return err
		}
		list = filterVehicle(list, v.ID)
	}

	if c.JSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(list) == 0 {
		ctx.Println("Nothing to show. Add a vehicle with 'agenda vehicle add <name>'.")
		return nil
	}

	_, loc, err := ctx.Settings()
	if err != nil {
		return err
	}
	now := ctx.Clock()
	current := models.DueStatus(-1)
	for _, a := range list {
		if a.Status != current {
			current = a.Status
			ctx.Printf("\n%s %s\n", marker(current), current.Label())
		}
		ctx.Printf("  %-24s %-16s %-12s %-14s %s\n",
			a.ServiceType.Name,
			a.Vehicle.Name,
			cli.FormatDate(a.DueDate, loc),
			cli.FormatDays(a.DaysUntilDue(now)),
			formatDistanceLeft(a))
	}
	ctx.Println()
	return nil
}

func filterVehicle(list []models.DueAssessment, vehicleID string) []models.DueAssessment {
	var out []models.DueAssessment
	for _, a := range list {
		if a.Vehicle.ID == vehicleID {
			out = append(out, a)
		}
	}
	return out
}

func marker(s models.DueStatus) string {
	switch s {
	case models.StatusOverdue:
		return "❌"
	case models.StatusDueSoon:
		return "⚠"
	default:
		return "✓"
	}
}

func formatDistanceLeft(a models.DueAssessment) string {
	left := a.DistanceUntilDueKm()
	if left == nil {
		return "-"
	}
	unit := a.Vehicle.UnitPreference
	if *left <= 0 {
		return units.FormatDistance(-*left, unit, 0) + " over"
	}
	return units.FormatDistance(*left, unit, 0) + " left"
}
