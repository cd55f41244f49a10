package system

import (
	"encoding/json"
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/cli/services"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpVehicle  *DebugDumpVehicleCmd  `cmd:"" help:"Dump a vehicle with its rules as JSON."`
	DumpService  *DebugDumpServiceCmd  `cmd:"" help:"Dump a service event as JSON."`
	DumpAlerts   *DebugDumpAlertsCmd   `cmd:"" help:"Dump pending alerts as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(b))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"driver": ctx.Store.Driver(),
		"path":   ctx.Store.GetConfigPath(),
	})
}

type DebugDumpVehicleCmd struct {
	Vehicle string `arg:"" help:"Vehicle ID or name."`
}

func (cmd *DebugDumpVehicleCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(cmd.Vehicle)
	if err != nil {
		return err
	}
	rules, err := ctx.Store.ListRules(ctx.Background(), v.ID)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	return printJSON(ctx, map[string]any{
		"vehicle": v,
		"rules":   rules,
	})
}

type DebugDumpServiceCmd struct {
	ID string `arg:"" help:"Service event ID or unique prefix."`
}

func (cmd *DebugDumpServiceCmd) Run(ctx *cli.Context) error {
	e, err := services.FindEvent(ctx, cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]any{
		"event":  e,
		"photos": len(e.Photos),
	})
}

type DebugDumpAlertsCmd struct{}

func (cmd *DebugDumpAlertsCmd) Run(ctx *cli.Context) error {
	alerts, err := ctx.Store.ListPending(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending alerts: %w", err)
	}
	return printJSON(ctx, alerts)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}
