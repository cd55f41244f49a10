package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notifier"
	"github.com/pedromssoares/service-agenda-for-cars/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(ctx *cli.Context) error
	needsDB bool
	warning bool // a failure only warns
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "Notifier sinks", run: checkNotifier, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	if dbReachable {
		if n, err := ctx.Store.PendingCount(ctx.Background()); err == nil {
			ctx.Printf("ℹ Pending alerts: %d\n", n)
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Background()); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if err := ctx.Store.Ping(ctx.Background()); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store.Driver() != constants.DriverSQLite {
		return nil
	}
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'agenda backup create'")
	}
	return nil
}

// checkValidation re-validates every stored record and looks for rules or
// events pointing at missing vehicles or service types.
func checkValidation(ctx *cli.Context) error {
	bg := ctx.Background()
	settings, err := ctx.Store.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	snap, err := ctx.Store.Snapshot(bg)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	var problems []string
	vehicleIDs := make(map[string]bool, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		vehicleIDs[v.ID] = true
		if err := v.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("vehicle %s: %v", v.ID, err))
		}
	}
	typeIDs := make(map[string]bool, len(snap.Templates))
	for _, t := range snap.Templates {
		typeIDs[t.ID] = true
		if err := t.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("service type %s: %v", t.ID, err))
		}
	}
	for _, r := range snap.Rules {
		if !vehicleIDs[r.VehicleID] || !typeIDs[r.ServiceTypeID] {
			problems = append(problems, fmt.Sprintf("reminder rule %s references a missing vehicle or service type", r.ID))
		}
	}
	for _, e := range snap.Events {
		if !vehicleIDs[e.VehicleID] || !typeIDs[e.ServiceTypeID] {
			problems = append(problems, fmt.Sprintf("service event %s references a missing vehicle or service type", e.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found:\n   - %s", len(problems), strings.Join(problems, "\n   - "))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	sink, cleanup, err := ctx.BuildSink()
	if err != nil {
		return fmt.Errorf("failed to set up %s: %w", strings.Join(ctx.Cfg().Notify.Sinks, ", "), err)
	}
	defer cleanup()
	if m, ok := sink.(notifier.Multi); ok && len(m) == 0 {
		return fmt.Errorf("no notification sinks configured")
	}
	return nil
}
