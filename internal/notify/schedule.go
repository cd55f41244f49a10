package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/reminder"
)

// Facility is the alerting backend pending alerts are installed into.
type Facility interface {
	ClearPending(ctx context.Context) error
	InstallPending(ctx context.Context, alert models.PendingAlert) error
	PendingCount(ctx context.Context) (int, error)
}

// Source supplies the data a resync runs over.
type Source interface {
	Snapshot(ctx context.Context) (reminder.Snapshot, error)
	GetSettings(ctx context.Context) (models.Settings, error)
}

// Options controls a scheduling pass.
type Options struct {
	Enabled bool
	Policy  Policy
}

// Schedule replaces every pending alert with one alert per selected
// assessment. Running it twice with the same input installs the same set.
// When notifications are disabled the pending set is only cleared.
func Schedule(ctx context.Context, f Facility, assessments []models.DueAssessment, now time.Time, opts Options) (int, error) {
	if err := f.ClearPending(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear pending alerts: %w", err)
	}
	if !opts.Enabled {
		logger.Debug("Notifications disabled, pending alerts cleared")
		return 0, nil
	}

	selected := Select(assessments, now)
	for _, a := range selected {
		alert := RenderAlert(a, now, opts.Policy.TriggerTime(a, now))
		if err := f.InstallPending(ctx, alert); err != nil {
			return 0, fmt.Errorf("failed to install alert %s: %w", alert.ID, err)
		}
	}

	logger.Debug("Scheduled alerts", "selected", len(selected), "assessed", len(assessments))
	return len(selected), nil
}

// Result summarizes a resync.
type Result struct {
	Assessments []models.DueAssessment
	Installed   int
}

// Resync loads a fresh snapshot, recomputes every assessment and reschedules
// the pending alerts. Callers run it after any edit to vehicles, service
// types, events or rules.
func Resync(ctx context.Context, src Source, f Facility, now time.Time, loc *time.Location) (Result, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	settings, err := src.GetSettings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load settings: %w", err)
	}

	assessments := reminder.Calculate(snap, now)
	installed, err := Schedule(ctx, f, assessments, now, Options{
		Enabled: settings.NotificationsEnabled,
		Policy:  PolicyFromSettings(settings, loc),
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("Resynced alerts", "vehicles", len(snap.Vehicles), "assessments", len(assessments), "installed", installed)
	return Result{Assessments: assessments, Installed: installed}, nil
}
