package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/backup"
	"github.com/pedromssoares/service-agenda-for-cars/internal/config"
	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	apperrors "github.com/pedromssoares/service-agenda-for-cars/internal/errors"
	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/metrics"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notifier"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notify"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
	"github.com/pedromssoares/service-agenda-for-cars/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config

	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Now is the clock used for due calculations. Nil means time.Now.
	Now func() time.Time
	// Sink overrides the notifier sinks built from Config.
	Sink notifier.Sink

	ctx context.Context
}

// WithContext sets the base context.Context commands run under.
func (c *Context) WithContext(ctx context.Context) *Context {
	c.ctx = ctx
	return c
}

// Background returns the base context.Context for storage calls.
func (c *Context) Background() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Cfg() *config.Config {
	if c.Config == nil {
		cfg := config.Default()
		c.Config = &cfg
	}
	return c.Config
}

// Settings returns the stored settings and the timezone they select. An
// invalid timezone falls back to the system timezone.
func (c *Context) Settings() (models.Settings, *time.Location, error) {
	settings, err := c.Store.GetSettings(c.Background())
	if err != nil {
		return models.Settings{}, nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local", "timezone", settings.Timezone, "error", err)
		loc = time.Local
	}
	return settings, loc, nil
}

// Resync recomputes every due assessment, reschedules pending alerts and
// refreshes the metrics textfile when one is configured.
func (c *Context) Resync() (notify.Result, error) {
	_, loc, err := c.Settings()
	if err != nil {
		return notify.Result{}, err
	}
	now := c.Clock()
	res, err := notify.Resync(c.Background(), c.Store, c.Store, now, loc)
	if err != nil {
		return notify.Result{}, err
	}

	if path := c.Cfg().Metrics.TextfilePath; path != "" {
		if err := c.writeMetrics(path, res, now); err != nil {
			logger.Warn("Failed to write metrics textfile", "path", path, "error", err)
		}
	}
	return res, nil
}

func (c *Context) writeMetrics(path string, res notify.Result, now time.Time) error {
	pending, err := c.Store.PendingCount(c.Background())
	if err != nil {
		return err
	}
	col := metrics.New()
	col.Observe(res.Assessments, pending, now.Unix())
	return col.WriteTextfile(path)
}

// AfterEdit runs a resync after a data change. A failure is reported but
// does not undo the edit.
func (c *Context) AfterEdit() {
	res, err := c.Resync()
	if err != nil {
		logger.Error("Resync after edit failed", "error", err)
		c.Printf("⚠ Alerts were not rescheduled: %v\n", err)
		return
	}
	logger.Debug("Alerts rescheduled", "installed", res.Installed)
}

// BuildSink returns the configured notifier and a cleanup function.
func (c *Context) BuildSink() (notifier.Sink, func(), error) {
	if c.Sink != nil {
		return c.Sink, func() {}, nil
	}
	cfg := c.Cfg()
	multi, cleanup, err := notifier.Build(notifier.Options{
		Sinks:  cfg.Notify.Sinks,
		MQTT:   cfg.Notify.MQTT,
		Stdout: c.Writer(),
	})
	if err != nil {
		return nil, nil, err
	}
	return multi, cleanup, nil
}

// BackupManager returns the backup manager for the SQLite database, or an
// error for PostgreSQL.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.Store.Driver() != constants.DriverSQLite {
		return nil, fmt.Errorf("backups are only supported for SQLite databases, use pg_dump for %s", c.Store.Driver())
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Cfg().Backup.Keep), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindVehicle resolves a vehicle by ID, then by exact name.
func (c *Context) FindVehicle(ref string) (models.Vehicle, error) {
	ctx := c.Background()
	if v, err := c.Store.GetVehicle(ctx, ref); err == nil {
		return v, nil
	} else if !apperrors.IsNotFound(err) {
		return models.Vehicle{}, err
	}
	return c.Store.GetVehicleByName(ctx, strings.TrimSpace(ref))
}

// FindServiceType resolves a service type by ID, then by case-insensitive name.
func (c *Context) FindServiceType(ref string) (models.ServiceTypeTemplate, error) {
	ctx := c.Background()
	if t, err := c.Store.GetServiceType(ctx, ref); err == nil {
		return t, nil
	} else if !apperrors.IsNotFound(err) {
		return models.ServiceTypeTemplate{}, err
	}
	return c.Store.GetServiceTypeByName(ctx, strings.TrimSpace(ref))
}

// ParseDate parses YYYY-MM-DD in loc. "today" and "" mean the current date.
func (c *Context) ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "today" {
		y, m, d := c.Clock().In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := utils.ParseDateInLocation(s, loc)
	if err != nil {
		return time.Time{}, apperrors.Invalid("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParsePositive checks a number read from a flag is finite and above zero.
func ParsePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return apperrors.Invalid("%s must be greater than zero", name)
	}
	return nil
}

// FormatDays renders a days-until-due value.
func FormatDays(days *int) string {
	if days == nil {
		return "-"
	}
	switch {
	case *days < 0:
		return fmt.Sprintf("%d days ago", -*days)
	case *days == 0:
		return "today"
	case *days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", *days)
	}
}

// FormatDate renders an optional date in loc.
func FormatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(constants.DateFormat)
}
