// Package metrics exposes the due state as Prometheus gauges, written to a
// node-exporter textfile collector or printed in text format.
package metrics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type Collector struct {
	reg     *prometheus.Registry
	due     *prometheus.GaugeVec
	pending prometheus.Gauge
	lastRun prometheus.Gauge
}

// New creates gauges on a private registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		reg: reg,
		due: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "agenda_due_services",
			Help: "Number of tracked services per due status.",
		}, []string{"status"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agenda_pending_alerts",
			Help: "Number of installed alerts waiting for delivery.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agenda_last_resync_timestamp_seconds",
			Help: "Unix time of the last due calculation.",
		}),
	}
	reg.MustRegister(c.due, c.pending, c.lastRun)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// Observe records one resync. Every status is always exported, zero included.
func (c *Collector) Observe(assessments []models.DueAssessment, pending int, at int64) {
	counts := map[models.DueStatus]int{
		models.StatusOverdue:  0,
		models.StatusDueSoon:  0,
		models.StatusUpcoming: 0,
	}
	for _, a := range assessments {
		counts[a.Status]++
	}
	for status, n := range counts {
		c.due.WithLabelValues(status.String()).Set(float64(n))
	}
	c.pending.Set(float64(pending))
	c.lastRun.Set(float64(at))
}

// WriteText writes the current values in Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// WriteTextfile atomically replaces path with the current values.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// String renders the text format, mainly for the CLI.
func (c *Collector) String() string {
	var buf bytes.Buffer
	if err := c.WriteText(&buf); err != nil {
		return ""
	}
	return buf.String()
}
