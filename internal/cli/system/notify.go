package system

import (
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notifier"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notify"
)

// NotifyCmd delivers the pending alerts whose trigger time has passed. It is
// meant to run from cron or a systemd timer.
type NotifyCmd struct {
	DryRun bool `help:"Print due alerts to stdout without sending or removing them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, _, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		ctx.Println("Notifications are disabled in settings.")
		return nil
	}

	now := ctx.Clock()
	bg := ctx.Background()

	if c.DryRun {
		alerts, err := ctx.Store.ListPending(bg)
		if err != nil {
			return fmt.Errorf("failed to list pending alerts: %w", err)
		}
		out := notifier.NewStdout(ctx.Writer())
		due := 0
		for _, a := range alerts {
			if !a.IsDue(now) {
				continue
			}
			if err := out.Send(bg, a); err != nil {
				return err
			}
			due++
		}
		if due == 0 {
			ctx.Println("No alerts due.")
		}
		return nil
	}

	sink, cleanup, err := ctx.BuildSink()
	if err != nil {
		return fmt.Errorf("failed to set up notification sinks: %w", err)
	}
	defer cleanup()

	delivered, err := notify.Deliver(bg, ctx.Store, sink, now)
	logger.Debug("Delivered alerts", "count", delivered)
	if err != nil {
		return err
	}
	if delivered > 0 {
		ctx.Printf("✓ Delivered %d alert(s)\n", delivered)
	}
	return nil
}

// ResyncCmd recomputes due assessments and reschedules every pending alert.
type ResyncCmd struct{}

func (c *ResyncCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Resync()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Rescheduled %d alert(s) from %d assessment(s)\n", res.Installed, len(res.Assessments))
	return nil
}

type AlertsCmd struct{}

func (c *AlertsCmd) Run(ctx *cli.Context) error {
	_, loc, err := ctx.Settings()
	if err != nil {
		return err
	}
	alerts, err := ctx.Store.ListPending(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending alerts: %w", err)
	}
	if len(alerts) == 0 {
		ctx.Println("No pending alerts.")
		return nil
	}

	ctx.Printf("Pending alerts (%d):\n", len(alerts))
	for _, a := range alerts {
		ctx.Printf("  %s  %s\n", a.FireAt.In(loc).Format("2006-01-02 15:04"), a.Title)
		ctx.Printf("      %s\n", a.Body)
	}
	return nil
}
