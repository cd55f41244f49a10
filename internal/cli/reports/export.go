package reports

import (
	"fmt"
	"os"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/export"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
)

type ExportCSVCmd struct {
	Output string `short:"o" help:"File to write. Defaults to stdout." default:"-"`
}

func (c *ExportCSVCmd) Run(ctx *cli.Context) error {
	bg := ctx.Background()
	events, err := ctx.Store.ListEvents(bg, storage.EventFilter{})
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	vehicles, err := ctx.Store.ListVehicles(bg)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}
	templates, err := ctx.Store.ListServiceTypes(bg)
	if err != nil {
		return fmt.Errorf("failed to list service types: %w", err)
	}

	if c.Output == "" || c.Output == "-" {
		return export.WriteCSV(ctx.Writer(), events, vehicles, templates)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.WriteCSV(f, events, vehicles, templates); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %d services to %s\n", len(events), c.Output)
	return nil
}
