package vehicles

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

type VehicleAddCmd struct {
	Name     string  `arg:"" help:"Vehicle name."`
	Unit     string  `help:"Distance unit for display and input (km or mi)." default:"km"`
	Odometer float64 `help:"Current odometer reading in the chosen unit." default:"0"`
}

func (c *VehicleAddCmd) Run(ctx *cli.Context) error {
	unit, err := models.ParseDistanceUnit(c.Unit)
	if err != nil {
		return err
	}
	if err := checkReading(c.Odometer); err != nil {
		return err
	}

	v := models.Vehicle{
		ID:                uuid.New().String(),
		Name:              c.Name,
		UnitPreference:    unit,
		CurrentOdometerKm: units.ToStoredValue(c.Odometer, unit),
		CreatedAt:         ctx.Clock(),
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddVehicle(ctx.Background(), v); err != nil {
		return fmt.Errorf("failed to add vehicle: %w", err)
	}

	ctx.Printf("Added vehicle: %s (ID: %s)\n", v.Name, v.ID)
	ctx.AfterEdit()
	return nil
}

type VehicleListCmd struct{}

func (c *VehicleListCmd) Run(ctx *cli.Context) error {
	vehicles, err := ctx.Store.ListVehicles(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		ctx.Println("No vehicles yet. Add one with 'agenda vehicle add <name>'.")
		return nil
	}
	for _, v := range vehicles {
		ctx.Printf("%s  %-20s  %s\n", v.ID, v.Name, units.FormatDistance(v.CurrentOdometerKm, v.UnitPreference, 0))
	}
	return nil
}

type VehicleEditCmd struct {
	Vehicle string  `arg:"" help:"Vehicle ID or name."`
	Name    *string `help:"New name."`
	Unit    *string `help:"New distance unit (km or mi)."`
}

func (c *VehicleEditCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	if c.Name == nil && c.Unit == nil {
		return fmt.Errorf("nothing to change, pass --name or --unit")
	}
	if c.Name != nil {
		v.Name = *c.Name
	}
	if c.Unit != nil {
		unit, err := models.ParseDistanceUnit(*c.Unit)
		if err != nil {
			return err
		}
		// Stored values stay in kilometers, only the display changes.
		v.UnitPreference = unit
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateVehicle(ctx.Background(), v); err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	ctx.Printf("Updated vehicle: %s\n", v.Name)
	ctx.AfterEdit()
	return nil
}

type VehicleDeleteCmd struct {
	Vehicle string `arg:"" help:"Vehicle ID or name."`
}

func (c *VehicleDeleteCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteVehicle(ctx.Background(), v.ID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	ctx.Printf("Deleted vehicle %s with its service history and reminder rules\n", v.Name)
	ctx.AfterEdit()
	return nil
}

type VehicleOdometerCmd struct {
	Vehicle string  `arg:"" help:"Vehicle ID or name."`
	Reading float64 `arg:"" help:"Current odometer reading in the vehicle's unit."`
}

func (c *VehicleOdometerCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	if err := checkReading(c.Reading); err != nil {
		return err
	}

	previous := v.CurrentOdometerKm
	v.CurrentOdometerKm = units.ToStoredValue(c.Reading, v.UnitPreference)
	if err := ctx.Store.UpdateVehicle(ctx.Background(), v); err != nil {
		return fmt.Errorf("failed to update odometer: %w", err)
	}

	ctx.Printf("Odometer for %s: %s → %s\n", v.Name,
		units.FormatDistance(previous, v.UnitPreference, 0),
		units.FormatDistance(v.CurrentOdometerKm, v.UnitPreference, 0))
	ctx.AfterEdit()
	return nil
}

func checkReading(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("odometer cannot be negative")
	}
	return nil
}
