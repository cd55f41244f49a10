package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	apperrors "github.com/pedromssoares/service-agenda-for-cars/internal/errors"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

type ServiceLogCmd struct {
	Vehicle        string   `arg:"" help:"Vehicle ID or name."`
	Type           string   `arg:"" help:"Service type ID or name."`
	Odometer       float64  `required:"" help:"Odometer reading at service time, in the vehicle's unit."`
	Date           string   `help:"Service date (YYYY-MM-DD). Defaults to today." default:"today"`
	Cost           *float64 `help:"Service cost."`
	Notes          string   `help:"Free-form notes."`
	Photo          []string `help:"Path to a photo to attach (repeatable, at most 5)."`
	UpdateOdometer bool     `help:"Raise the vehicle odometer to this reading if it is higher."`
}

func (c *ServiceLogCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	t, err := ctx.FindServiceType(c.Type)
	if err != nil {
		return err
	}
	_, loc, err := ctx.Settings()
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date, loc)
	if err != nil {
		return err
	}
	if err := cli.ParsePositive("odometer", c.Odometer); err != nil {
		return err
	}
	photos, err := ReadPhotos(c.Photo)
	if err != nil {
		return err
	}

	e := models.ServiceEvent{
		ID:            uuid.New().String(),
		VehicleID:     v.ID,
		ServiceTypeID: t.ID,
		Date:          date,
		OdometerKm:    units.ToStoredValue(c.Odometer, v.UnitPreference),
		Cost:          c.Cost,
		Notes:         optional(c.Notes),
		Photos:        photos,
	}
	if err := e.Validate(); err != nil {
		return apperrors.Invalid("%v", err)
	}
	if err := ctx.Store.AddEvent(ctx.Background(), e); err != nil {
		return fmt.Errorf("failed to log service: %w", err)
	}
	ctx.Printf("Logged %s for %s on %s at %s (ID: %s)\n", t.Name, v.Name,
		date.Format(constants.DateFormat), units.FormatDistance(e.OdometerKm, v.UnitPreference, 0), e.ID)

	if c.UpdateOdometer && e.OdometerKm > v.CurrentOdometerKm {
		v.CurrentOdometerKm = e.OdometerKm
		if err := ctx.Store.UpdateVehicle(ctx.Background(), v); err != nil {
			return fmt.Errorf("failed to update odometer: %w", err)
		}
		ctx.Printf("Odometer for %s raised to %s\n", v.Name, units.FormatDistance(v.CurrentOdometerKm, v.UnitPreference, 0))
	}

	ctx.AfterEdit()
	return nil
}

type ServiceListCmd struct {
	Vehicle string `help:"Only show services for this vehicle."`
	Type    string `help:"Only show services of this type."`
}

func (c *ServiceListCmd) Run(ctx *cli.Context) error {
	bg := ctx.Background()
	var filter storage.EventFilter
	if c.Vehicle != "" {
		v, err := ctx.FindVehicle(c.Vehicle)
		if err != nil {
			return err
		}
		filter.VehicleID = v.ID
	}
	if c.Type != "" {
		t, err := ctx.FindServiceType(c.Type)
		if err != nil {
			return err
		}
		filter.ServiceTypeID = t.ID
	}

	events, err := ctx.Store.ListEvents(bg, filter)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	if len(events) == 0 {
		ctx.Println("No services logged.")
		return nil
	}

	vehicles, err := ctx.Store.ListVehicles(bg)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}
	templates, err := ctx.Store.ListServiceTypes(bg)
	if err != nil {
		return fmt.Errorf("failed to list service types: %w", err)
	}
	settings, loc, err := ctx.Settings()
	if err != nil {
		return err
	}

	vehicleByID := make(map[string]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
	}
	typeByID := make(map[string]string, len(templates))
	for _, t := range templates {
		typeByID[t.ID] = t.Name
	}

	for _, e := range events {
		v := vehicleByID[e.VehicleID]
		cost := "-"
		if e.Cost != nil {
			cost = units.FormatCurrency(*e.Cost, settings.CurrencySymbol)
		}
		ctx.Printf("%s  %s  %-14s %-24s %10s %10s\n",
			shortID(e.ID), e.Date.In(loc).Format(constants.DateFormat), v.Name, typeByID[e.ServiceTypeID],
			units.FormatDistance(e.OdometerKm, v.UnitPreference, 0), cost)
		if e.Notes != nil && *e.Notes != "" {
			ctx.Printf("          %s\n", *e.Notes)
		}
	}
	return nil
}

type ServiceEditCmd struct {
	ID        string   `arg:"" help:"Service event ID or unique ID prefix."`
	Date      string   `help:"New service date (YYYY-MM-DD)."`
	Odometer  *float64 `help:"New odometer reading in the vehicle's unit."`
	Cost      *float64 `help:"New cost."`
	ClearCost bool     `help:"Remove the cost."`
	Notes     *string  `help:"New notes. An empty value removes them."`
	Photo     []string `help:"Replace the attached photos (repeatable, at most 5)."`
}

func (c *ServiceEditCmd) Run(ctx *cli.Context) error {
	e, err := FindEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	v, err := ctx.Store.GetVehicle(ctx.Background(), e.VehicleID)
	if err != nil {
		return err
	}

	if c.Date != "" {
		_, loc, err := ctx.Settings()
		if err != nil {
			return err
		}
		if e.Date, err = ctx.ParseDate(c.Date, loc); err != nil {
			return err
		}
	}
	if c.Odometer != nil {
		if err := cli.ParsePositive("odometer", *c.Odometer); err != nil {
			return err
		}
		e.OdometerKm = units.ToStoredValue(*c.Odometer, v.UnitPreference)
	}
	if c.Cost != nil {
		e.Cost = c.Cost
	}
	if c.ClearCost {
		e.Cost = nil
	}
	if c.Notes != nil {
		e.Notes = optional(*c.Notes)
	}
	if len(c.Photo) > 0 {
		if e.Photos, err = ReadPhotos(c.Photo); err != nil {
			return err
		}
	}
	if err := e.Validate(); err != nil {
		return apperrors.Invalid("%v", err)
	}
	if err := ctx.Store.UpdateEvent(ctx.Background(), e); err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	ctx.Printf("Updated service %s\n", e.ID)
	ctx.AfterEdit()
	return nil
}

type ServiceDeleteCmd struct {
	ID string `arg:"" help:"Service event ID or unique ID prefix."`
}

func (c *ServiceDeleteCmd) Run(ctx *cli.Context) error {
	e, err := FindEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEvent(ctx.Background(), e.ID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	ctx.Printf("Deleted service %s\n", e.ID)
	ctx.AfterEdit()
	return nil
}

// FindEvent resolves a full event ID or an unambiguous prefix of one, as
// printed by 'service list'. The returned event carries its photos.
func FindEvent(ctx *cli.Context, ref string) (models.ServiceEvent, error) {
	bg := ctx.Background()
	if strings.TrimSpace(ref) == "" {
		return models.ServiceEvent{}, apperrors.Invalid("service ID cannot be empty")
	}
	if e, err := ctx.Store.GetEvent(bg, ref); err == nil {
		return e, nil
	} else if !apperrors.IsNotFound(err) {
		return models.ServiceEvent{}, err
	}

	events, err := ctx.Store.ListEvents(bg, storage.EventFilter{})
	if err != nil {
		return models.ServiceEvent{}, fmt.Errorf("failed to list services: %w", err)
	}
	var match string
	for _, e := range events {
		if strings.HasPrefix(e.ID, ref) {
			if match != "" {
				return models.ServiceEvent{}, apperrors.Invalid("service ID prefix %q is ambiguous", ref)
			}
			match = e.ID
		}
	}
	if match == "" {
		return models.ServiceEvent{}, apperrors.NotFound("service event", ref)
	}
	return ctx.Store.GetEvent(bg, match)
}

// ReadPhotos loads photo files as blobs.
func ReadPhotos(paths []string) ([][]byte, error) {
	if len(paths) > constants.MaxPhotosPerEvent {
		return nil, apperrors.Invalid("at most %d photos can be attached, got %d", constants.MaxPhotosPerEvent, len(paths))
	}
	var photos [][]byte
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		photos = append(photos, data)
	}
	return photos, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
