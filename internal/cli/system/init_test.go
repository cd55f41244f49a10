package system

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli/clitest"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/sqlite"
)

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, out := clitest.New(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	types, err := ctx.Store.ListServiceTypes(ctx.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 8 {
		t.Errorf("service types = %d after repeated init, want 8", len(types))
	}
	if !strings.Contains(out.String(), "Initialized agenda storage at:") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_ForceResets(t *testing.T) {
	ctx, out := clitest.New(t)
	bg := ctx.Background()
	v := models.Vehicle{ID: "v1", Name: "Civic", UnitPreference: models.UnitKilometers, CreatedAt: clitest.Now}
	if err := ctx.Store.AddVehicle(bg, v); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	list, err := ctx.Store.ListVehicles(bg)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("vehicles survived --force: %+v", list)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	bg := context.Background()
	srcPath := filepath.Join(t.TempDir(), "source.db")
	src := sqlite.NewStore(srcPath)
	if err := src.Init(bg); err != nil {
		t.Fatal(err)
	}

	oil, err := src.GetServiceTypeByName(bg, "Oil Change")
	if err != nil {
		t.Fatal(err)
	}
	days := 90
	custom := models.ServiceTypeTemplate{ID: "t-custom", Name: "Wiper Blades", DefaultIntervalDays: &days, IsEnabled: true}
	v := models.Vehicle{ID: "v1", Name: "Civic", UnitPreference: models.UnitKilometers, CurrentOdometerKm: 12000, CreatedAt: clitest.Now}
	event := models.ServiceEvent{
		ID: "e1", VehicleID: "v1", ServiceTypeID: oil.ID,
		Date: clitest.Now.Add(-30 * 24 * time.Hour), OdometerKm: 11000,
		Photos: [][]byte{[]byte("jpeg")},
	}
	rule := models.ReminderRule{ID: "r1", VehicleID: "v1", ServiceTypeID: "t-custom", DaysInterval: &days, Enabled: true}
	for _, err := range []error{
		src.AddServiceType(bg, custom),
		src.AddVehicle(bg, v),
		src.AddEvent(bg, event),
		src.SetRule(bg, rule),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}

	ctx, out := clitest.New(t)
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v\n%s", err, out.String())
	}

	types, err := ctx.Store.ListServiceTypes(bg)
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 9 {
		t.Errorf("service types = %d, want 8 defaults plus 1 custom", len(types))
	}

	got, err := ctx.Store.GetVehicle(bg, "v1")
	if err != nil {
		t.Fatalf("vehicle not copied: %v", err)
	}
	if got.CurrentOdometerKm != 12000 {
		t.Errorf("odometer = %v", got.CurrentOdometerKm)
	}

	dstOil, err := ctx.Store.GetServiceTypeByName(bg, "Oil Change")
	if err != nil {
		t.Fatal(err)
	}
	events, err := ctx.Store.ListEvents(bg, storage.EventFilter{VehicleID: "v1", WithPhotos: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ServiceTypeID != dstOil.ID || len(events[0].Photos) != 1 {
		t.Errorf("event not copied correctly: %+v", events)
	}

	rules, err := ctx.Store.ListRules(bg, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 {
		t.Errorf("rules = %+v", rules)
	}
	if !strings.Contains(out.String(), "Migration completed successfully!") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, _ := clitest.New(t)
	path := ctx.Store.GetConfigPath()

	if err := (&InitCmd{Force: true, Source: path}).Run(ctx); err == nil {
		t.Error("expected error when source and destination match")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database was removed: %v", err)
	}
}
