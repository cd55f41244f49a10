package system

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/cli/clitest"
	"github.com/pedromssoares/service-agenda-for-cars/internal/cli/vehicles"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type recordingSink struct {
	sent []models.PendingAlert
	err  error
}

func (r *recordingSink) Name() string { return "recording" }

func (r *recordingSink) Send(_ context.Context, a models.PendingAlert) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, a)
	return nil
}

// withAlerts adds a vehicle close enough to its oil change to install alerts
// and moves the clock past every trigger time.
func withAlerts(t *testing.T) (*cli.Context, *bytes.Buffer, *recordingSink) {
	t.Helper()
	ctx, out := clitest.New(t)
	if err := (&vehicles.VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 7500}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n == 0 {
		t.Fatal("expected pending alerts")
	}
	later := clitest.Now.Add(400 * 24 * time.Hour)
	ctx.Now = func() time.Time { return later }
	sink := &recordingSink{}
	ctx.Sink = sink
	out.Reset()
	return ctx, out, sink
}

func TestNotifyCmd_DeliversAndRemoves(t *testing.T) {
	ctx, _, sink := withAlerts(t)
	pending, _ := ctx.Store.PendingCount(ctx.Background())

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sink.sent) != pending {
		t.Errorf("sent %d alerts, want %d", len(sink.sent), pending)
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n != 0 {
		t.Errorf("%d alerts left after delivery", n)
	}
	if len(sink.sent) == 0 || !strings.Contains(sink.sent[0].Body, "Civic") {
		t.Errorf("unexpected alerts %+v", sink.sent)
	}
}

func TestNotifyCmd_FailedSendKeepsAlert(t *testing.T) {
	ctx, _, sink := withAlerts(t)
	sink.err = errors.New("broker down")
	pending, _ := ctx.Store.PendingCount(ctx.Background())

	if err := (&NotifyCmd{}).Run(ctx); err == nil {
		t.Error("expected delivery error")
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n != pending {
		t.Errorf("pending = %d, want %d", n, pending)
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, out, sink := withAlerts(t)
	pending, _ := ctx.Store.PendingCount(ctx.Background())

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(sink.sent) != 0 {
		t.Error("dry run used the configured sink")
	}
	if !strings.Contains(out.String(), "Civic") {
		t.Errorf("dry run output missing alert:\n%s", out.String())
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n != pending {
		t.Errorf("dry run removed alerts: %d left of %d", n, pending)
	}
}

func TestNotifyCmd_Disabled(t *testing.T) {
	ctx, out := clitest.New(t)
	settings, _ := ctx.Store.GetSettings(ctx.Background())
	settings.NotificationsEnabled = false
	if err := ctx.Store.SaveSettings(ctx.Background(), settings); err != nil {
		t.Fatal(err)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestResyncCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&vehicles.VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 7500}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.ClearPending(ctx.Background()); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&ResyncCmd{}).Run(ctx); err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if n, _ := ctx.Store.PendingCount(ctx.Background()); n == 0 {
		t.Error("resync installed no alerts")
	}
	if !strings.Contains(out.String(), "Rescheduled") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestAlertsCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&AlertsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No pending alerts.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&vehicles.VehicleAddCmd{Name: "Civic", Unit: "km", Odometer: 7500}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&AlertsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Pending alerts") || !strings.Contains(out.String(), "Civic") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
