package reports

import (
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/metrics"
)

// MetricsCmd prints the due gauges in Prometheus text format, or writes them
// to a node-exporter textfile.
type MetricsCmd struct {
	Textfile string `help:"Write to this .prom file instead of stdout. Defaults to metrics.textfile_path when set."`
}

func (c *MetricsCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Resync()
	if err != nil {
		return err
	}
	pending, err := ctx.Store.PendingCount(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to count pending alerts: %w", err)
	}

	col := metrics.New()
	col.Observe(res.Assessments, pending, ctx.Clock().Unix())

	path := c.Textfile
	if path == "" {
		path = ctx.Cfg().Metrics.TextfilePath
	}
	if path == "" {
		return col.WriteText(ctx.Writer())
	}
	if err := col.WriteTextfile(path); err != nil {
		return err
	}
	ctx.Printf("✓ Metrics written to %s\n", path)
	return nil
}
