package vehicles

import (
	"strings"
	"testing"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli/clitest"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

func TestVehicleAddCmd_StoresKilometers(t *testing.T) {
	ctx, out := clitest.New(t)

	cmd := &VehicleAddCmd{Name: "Civic", Unit: "mi", Odometer: 1000}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("vehicle add failed: %v", err)
	}

	v, err := ctx.Store.GetVehicleByName(ctx.Background(), "Civic")
	if err != nil {
		t.Fatalf("vehicle not stored: %v", err)
	}
	if v.UnitPreference != models.UnitMiles {
		t.Errorf("unit = %q, want miles", v.UnitPreference)
	}
	if v.CurrentOdometerKm < 1609.3 || v.CurrentOdometerKm > 1609.4 {
		t.Errorf("odometer = %v km, want 1609.34", v.CurrentOdometerKm)
	}
	if !strings.Contains(out.String(), "Added vehicle: Civic") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestVehicleAddCmd_RejectsBadInput(t *testing.T) {
	ctx, _ := clitest.New(t)

	tests := []VehicleAddCmd{
		{Name: "", Unit: "km"},
		{Name: "Civic", Unit: "furlongs"},
		{Name: "Civic", Unit: "km", Odometer: -5},
	}
	for _, cmd := range tests {
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("expected error for %+v", cmd)
		}
	}
}

func TestVehicleAddCmd_SchedulesAlerts(t *testing.T) {
	ctx, _ := clitest.New(t)

	// Without history the distance criterion counts from zero, so the seeded
	// 8000 km oil change is 500 km away and due soon.
	if err := (&VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 7500}).Run(ctx); err != nil {
		t.Fatalf("vehicle add failed: %v", err)
	}

	n, err := ctx.Store.PendingCount(ctx.Background())
	if err != nil {
		t.Fatalf("PendingCount() error = %v", err)
	}
	if n == 0 {
		t.Error("expected alerts to be scheduled after adding a vehicle")
	}
}

func TestVehicleEditCmd(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 5000}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	name, unit := "Family car", "mi"
	if err := (&VehicleEditCmd{Vehicle: "Civic", Name: &name, Unit: &unit}).Run(ctx); err != nil {
		t.Fatalf("vehicle edit failed: %v", err)
	}

	v, err := ctx.Store.GetVehicleByName(ctx.Background(), "Family car")
	if err != nil {
		t.Fatalf("renamed vehicle not found: %v", err)
	}
	if v.UnitPreference != models.UnitMiles || v.CurrentOdometerKm != 5000 {
		t.Errorf("unexpected vehicle after edit: %+v", v)
	}

	if err := (&VehicleEditCmd{Vehicle: "Family car"}).Run(ctx); err == nil {
		t.Error("expected error when nothing changes")
	}
}

func TestVehicleOdometerCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 5000}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&VehicleOdometerCmd{Vehicle: "Civic", Reading: 7500}).Run(ctx); err != nil {
		t.Fatalf("odometer update failed: %v", err)
	}
	v, _ := ctx.Store.GetVehicleByName(ctx.Background(), "Civic")
	if v.CurrentOdometerKm != 7500 {
		t.Errorf("odometer = %v, want 7500", v.CurrentOdometerKm)
	}
	if !strings.Contains(out.String(), "5000 km → 7500 km") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&VehicleOdometerCmd{Vehicle: "Civic", Reading: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative reading")
	}
	if err := (&VehicleOdometerCmd{Vehicle: "Civic", Reading: 0}).Run(ctx); err != nil {
		t.Errorf("zero reading should be accepted: %v", err)
	}
}

func TestVehicleDeleteAndList(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 7500}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n == 0 {
		t.Fatal("expected pending alerts before delete")
	}
	if err := (&VehicleDeleteCmd{Vehicle: "Civic"}).Run(ctx); err != nil {
		t.Fatalf("vehicle delete failed: %v", err)
	}
	if err := (&VehicleDeleteCmd{Vehicle: "Civic"}).Run(ctx); err == nil {
		t.Error("deleting a missing vehicle should fail")
	}

	n, _ := ctx.Store.PendingCount(ctx.Background())
	if n != 0 {
		t.Errorf("pending alerts = %d after deleting the only vehicle", n)
	}

	out.Reset()
	if err := (&VehicleListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No vehicles yet") {
		t.Errorf("unexpected list output: %s", out.String())
	}
}
