package types

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/sqlstore"
)

type TypeAddCmd struct {
	Name     string   `arg:"" help:"Service type name."`
	Days     *int     `help:"Default interval in days."`
	Km       *float64 `help:"Default interval in kilometers."`
	Disabled bool     `help:"Create the type disabled."`
}

func (c *TypeAddCmd) Run(ctx *cli.Context) error {
	t := models.ServiceTypeTemplate{
		ID:                        uuid.New().String(),
		Name:                      c.Name,
		DefaultIntervalDays:       c.Days,
		DefaultIntervalDistanceKm: c.Km,
		IsEnabled:                 !c.Disabled,
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddServiceType(ctx.Background(), t); err != nil {
		return fmt.Errorf("failed to add service type: %w", err)
	}

	ctx.Printf("Added service type: %s (ID: %s)\n", t.Name, t.ID)
	ctx.AfterEdit()
	return nil
}

type TypeListCmd struct{}

func (c *TypeListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Store.ListServiceTypes(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list service types: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No service types. Run 'agenda type seed' to add the defaults.")
		return nil
	}
	for _, t := range list {
		state := "enabled"
		if !t.IsEnabled {
			state = "disabled"
		}
		ctx.Printf("%-28s %-18s %s\n", t.Name, FormatIntervals(t.DefaultIntervalDays, t.DefaultIntervalDistanceKm), state)
	}
	return nil
}

type TypeEditCmd struct {
	Type      string   `arg:"" help:"Service type ID or name."`
	Name      *string  `help:"New name."`
	Days      *int     `help:"Default interval in days."`
	Km        *float64 `help:"Default interval in kilometers."`
	ClearDays bool     `help:"Remove the day interval."`
	ClearKm   bool     `help:"Remove the distance interval."`
}

func (c *TypeEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.FindServiceType(c.Type)
	if err != nil {
		return err
	}
	if c.Name != nil {
		t.Name = *c.Name
	}
	if c.Days != nil {
		t.DefaultIntervalDays = c.Days
	}
	if c.Km != nil {
		t.DefaultIntervalDistanceKm = c.Km
	}
	if c.ClearDays {
		t.DefaultIntervalDays = nil
	}
	if c.ClearKm {
		t.DefaultIntervalDistanceKm = nil
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateServiceType(ctx.Background(), t); err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}

	ctx.Printf("Updated service type: %s (%s)\n", t.Name, FormatIntervals(t.DefaultIntervalDays, t.DefaultIntervalDistanceKm))
	ctx.AfterEdit()
	return nil
}

type TypeEnableCmd struct {
	Type string `arg:"" help:"Service type ID or name."`
}

func (c *TypeEnableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.Type, true)
}

type TypeDisableCmd struct {
	Type string `arg:"" help:"Service type ID or name."`
}

func (c *TypeDisableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.Type, false)
}

func setEnabled(ctx *cli.Context, ref string, enabled bool) error {
	t, err := ctx.FindServiceType(ref)
	if err != nil {
		return err
	}
	t.IsEnabled = enabled
	if err := ctx.Store.UpdateServiceType(ctx.Background(), t); err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}

	if enabled {
		ctx.Printf("✓ Enabled %s\n", t.Name)
	} else {
		ctx.Printf("✓ Disabled %s\n", t.Name)
	}
	ctx.AfterEdit()
	return nil
}

type TypeDeleteCmd struct {
	Type string `arg:"" help:"Service type ID or name."`
}

func (c *TypeDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.FindServiceType(c.Type)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteServiceType(ctx.Background(), t.ID); err != nil {
		return fmt.Errorf("failed to delete service type: %w", err)
	}

	ctx.Printf("Deleted service type %s with its service history and rules\n", t.Name)
	ctx.AfterEdit()
	return nil
}

type TypeSeedCmd struct{}

func (c *TypeSeedCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Store.SeedServiceTypes(ctx.Background(), sqlstore.DefaultServiceTypes())
	if err != nil {
		return fmt.Errorf("failed to seed service types: %w", err)
	}
	if n == 0 {
		ctx.Println("Service types already exist, nothing seeded.")
		return nil
	}

	ctx.Printf("Seeded %d default service types\n", n)
	ctx.AfterEdit()
	return nil
}

// FormatIntervals renders a day/kilometer interval pair, e.g. "180d / 8000 km".
func FormatIntervals(days *int, km *float64) string {
	switch {
	case days != nil && km != nil:
		return fmt.Sprintf("%dd / %.0f km", *days, *km)
	case days != nil:
		return fmt.Sprintf("%dd", *days)
	case km != nil:
		return fmt.Sprintf("%.0f km", *km)
	default:
		return "no interval"
	}
}
