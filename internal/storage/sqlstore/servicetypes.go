package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type serviceTypeRow struct {
	ID                        string          `db:"id"`
	Name                      string          `db:"name"`
	DefaultIntervalDays       sql.NullInt64   `db:"default_interval_days"`
	DefaultIntervalDistanceKm sql.NullFloat64 `db:"default_interval_distance_km"`
	IsEnabled                 bool            `db:"is_enabled"`
}

const serviceTypeColumns = "id, name, default_interval_days, default_interval_distance_km, is_enabled"

func (r serviceTypeRow) toModel() models.ServiceTypeTemplate {
	return models.ServiceTypeTemplate{
		ID:                        r.ID,
		Name:                      r.Name,
		DefaultIntervalDays:       intPtr(r.DefaultIntervalDays),
		DefaultIntervalDistanceKm: floatPtr(r.DefaultIntervalDistanceKm),
		IsEnabled:                 r.IsEnabled,
	}
}

func (s *Store) AddServiceType(ctx context.Context, t models.ServiceTypeTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return addServiceType(ctx, s, s.db, t)
}

func addServiceType(ctx context.Context, s *Store, q sqlx.ExtContext, t models.ServiceTypeTemplate) error {
	_, err := s.exec(ctx, q, `
		INSERT INTO service_types (id, name, default_interval_days, default_interval_distance_km, is_enabled)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, nullInt(t.DefaultIntervalDays), nullFloat(t.DefaultIntervalDistanceKm), t.IsEnabled)
	if err != nil {
		return fmt.Errorf("failed to insert service type: %w", err)
	}
	return nil
}

func (s *Store) GetServiceType(ctx context.Context, id string) (models.ServiceTypeTemplate, error) {
	var row serviceTypeRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+serviceTypeColumns+" FROM service_types WHERE id = ?"), id)
	if err != nil {
		return models.ServiceTypeTemplate{}, notFound(err, "service type", id)
	}
	return row.toModel(), nil
}

func (s *Store) GetServiceTypeByName(ctx context.Context, name string) (models.ServiceTypeTemplate, error) {
	var row serviceTypeRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+serviceTypeColumns+" FROM service_types WHERE LOWER(name) = LOWER(?) LIMIT 1"), name)
	if err != nil {
		return models.ServiceTypeTemplate{}, notFound(err, "service type", name)
	}
	return row.toModel(), nil
}

// ListServiceTypes returns all templates, enabled or not, sorted by name.
func (s *Store) ListServiceTypes(ctx context.Context) ([]models.ServiceTypeTemplate, error) {
	return listServiceTypes(ctx, s.db)
}

func listServiceTypes(ctx context.Context, q sqlx.QueryerContext) ([]models.ServiceTypeTemplate, error) {
	var rows []serviceTypeRow
	if err := sqlx.SelectContext(ctx, q, &rows, "SELECT "+serviceTypeColumns+" FROM service_types ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	out := make([]models.ServiceTypeTemplate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) UpdateServiceType(ctx context.Context, t models.ServiceTypeTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := s.exec(ctx, s.db, `
		UPDATE service_types
		SET name = ?, default_interval_days = ?, default_interval_distance_km = ?, is_enabled = ?
		WHERE id = ?`,
		t.Name, nullInt(t.DefaultIntervalDays), nullFloat(t.DefaultIntervalDistanceKm), t.IsEnabled, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}
	return requireAffected(res, "service type", t.ID)
}

// DeleteServiceType removes a template with every event, rule and alert that
// references it.
func (s *Store) DeleteServiceType(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		steps := []string{
			"DELETE FROM event_photos WHERE event_id IN (SELECT id FROM service_events WHERE service_type_id = ?)",
			"DELETE FROM service_events WHERE service_type_id = ?",
			"DELETE FROM reminder_rules WHERE service_type_id = ?",
			"DELETE FROM pending_alerts WHERE service_type_id = ?",
		}
		for _, q := range steps {
			if _, err := s.exec(ctx, tx, q, id); err != nil {
				return fmt.Errorf("failed to delete service type data: %w", err)
			}
		}
		res, err := s.exec(ctx, tx, "DELETE FROM service_types WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete service type: %w", err)
		}
		return requireAffected(res, "service type", id)
	})
}

// SeedServiceTypes inserts templates only when none exist yet. It returns the
// number inserted.
func (s *Store) SeedServiceTypes(ctx context.Context, templates []models.ServiceTypeTemplate) (int, error) {
	inserted := 0
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM service_types"); err != nil {
			return fmt.Errorf("failed to count service types: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, t := range templates {
			if err := addServiceType(ctx, s, tx, t); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
