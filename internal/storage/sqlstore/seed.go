package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type defaultTemplate struct {
	name string
	days int
	km   float64
}

var defaultTemplates = []defaultTemplate{
	{name: "Oil Change", days: 180, km: 8000},
	{name: "Tire Rotation", days: 180, km: 10000},
	{name: "Air Filter Replacement", days: 365, km: 20000},
	{name: "Brake Inspection", days: 365, km: 15000},
	{name: "Battery Check", days: 730},
	{name: "Coolant Flush", days: 730, km: 50000},
	{name: "Transmission Service", days: 730, km: 60000},
	{name: "Spark Plugs", days: 1095, km: 50000},
}

// DefaultServiceTypes returns the built-in templates with fresh IDs. A zero
// distance means the template has no distance interval.
func DefaultServiceTypes() []models.ServiceTypeTemplate {
	out := make([]models.ServiceTypeTemplate, 0, len(defaultTemplates))
	for _, d := range defaultTemplates {
		days := d.days
		t := models.ServiceTypeTemplate{
			ID:                  uuid.New().String(),
			Name:                d.name,
			DefaultIntervalDays: &days,
			IsEnabled:           true,
		}
		if d.km > 0 {
			km := d.km
			t.DefaultIntervalDistanceKm = &km
		}
		out = append(out, t)
	}
	return out
}

// EnsureDefaults stores default settings and seeds the default templates on a
// fresh database. Existing data is left untouched.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	has, err := s.HasSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !has {
		if err := s.SaveSettings(ctx, models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	if _, err := s.SeedServiceTypes(ctx, DefaultServiceTypes()); err != nil {
		return fmt.Errorf("failed to seed service types: %w", err)
	}
	return nil
}
