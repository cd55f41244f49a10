package reports

import (
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/analytics"
	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

type CostsCmd struct {
	Period  string `help:"Period to cover: all, month, 3months or year." default:"all" enum:"all,month,3months,year"`
	Vehicle string `help:"Only count services for this vehicle."`
}

func (c *CostsCmd) Run(ctx *cli.Context) error {
	period, err := analytics.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	filter := analytics.Filter{Period: period}
	if c.Vehicle != "" {
		v, err := ctx.FindVehicle(c.Vehicle)
		if err != nil {
			return err
		}
		filter.VehicleID = v.ID
	}

	bg := ctx.Background()
	events, err := ctx.Store.ListEvents(bg, storage.EventFilter{VehicleID: filter.VehicleID})
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	templates, err := ctx.Store.ListServiceTypes(bg)
	if err != nil {
		return fmt.Errorf("failed to list service types: %w", err)
	}
	settings, loc, err := ctx.Settings()
	if err != nil {
		return err
	}

	r := analytics.CostReport(events, templates, filter, ctx.Clock(), loc)
	money := func(v float64) string { return units.FormatCurrency(v, settings.CurrencySymbol) }

	if r.Count == 0 {
		ctx.Printf("No service costs recorded for period %q.\n", r.Period)
		return nil
	}

	ctx.Printf("Service costs (%s)\n", r.Period)
	ctx.Printf("  Total:     %s\n", money(r.Total))
	ctx.Printf("  Services:  %d\n", r.Count)
	ctx.Printf("  Average:   %s\n", money(r.Average))
	if r.Count > 1 {
		ctx.Printf("  Std dev:   %s\n", money(r.StdDev))
	}

	ctx.Println("\nBy service type:")
	for _, t := range r.ByType {
		ctx.Printf("  %-28s %10s  %3d× avg %s\n", t.Name, money(t.Total), t.Count, money(t.Average))
	}

	ctx.Println("\nBy month:")
	for _, m := range r.ByMonth {
		ctx.Printf("  %s  %10s\n", m.Month.Format("Jan 2006"), money(m.Total))
	}
	return nil
}
