package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type ruleRow struct {
	ID                 string          `db:"id"`
	VehicleID          string          `db:"vehicle_id"`
	ServiceTypeID      string          `db:"service_type_id"`
	DaysInterval       sql.NullInt64   `db:"days_interval"`
	DistanceIntervalKm sql.NullFloat64 `db:"distance_interval_km"`
	Enabled            bool            `db:"enabled"`
}

const ruleColumns = "id, vehicle_id, service_type_id, days_interval, distance_interval_km, enabled"

func (r ruleRow) toModel() models.ReminderRule {
	return models.ReminderRule{
		ID:                 r.ID,
		VehicleID:          r.VehicleID,
		ServiceTypeID:      r.ServiceTypeID,
		DaysInterval:       intPtr(r.DaysInterval),
		DistanceIntervalKm: floatPtr(r.DistanceIntervalKm),
		Enabled:            r.Enabled,
	}
}

// SetRule creates or replaces the rule for the rule's (vehicle, service type)
// pair. An existing rule keeps its ID.
func (s *Store) SetRule(ctx context.Context, r models.ReminderRule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO reminder_rules (id, vehicle_id, service_type_id, days_interval, distance_interval_km, enabled)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (vehicle_id, service_type_id) DO UPDATE SET
			days_interval = excluded.days_interval,
			distance_interval_km = excluded.distance_interval_km,
			enabled = excluded.enabled`,
		r.ID, r.VehicleID, r.ServiceTypeID, nullInt(r.DaysInterval), nullFloat(r.DistanceIntervalKm), r.Enabled)
	if err != nil {
		return fmt.Errorf("failed to save reminder rule: %w", err)
	}
	return nil
}

func (s *Store) GetRule(ctx context.Context, vehicleID, serviceTypeID string) (models.ReminderRule, error) {
	var row ruleRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+ruleColumns+" FROM reminder_rules WHERE vehicle_id = ? AND service_type_id = ?"), vehicleID, serviceTypeID)
	if err != nil {
		return models.ReminderRule{}, notFound(err, "reminder rule", vehicleID+"/"+serviceTypeID)
	}
	return row.toModel(), nil
}

// ListRules returns the rules for one vehicle, or all rules when vehicleID is empty.
func (s *Store) ListRules(ctx context.Context, vehicleID string) ([]models.ReminderRule, error) {
	if vehicleID == "" {
		return listRules(ctx, s.db)
	}
	var rows []ruleRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind("SELECT "+ruleColumns+" FROM reminder_rules WHERE vehicle_id = ?"), vehicleID); err != nil {
		return nil, fmt.Errorf("failed to list reminder rules: %w", err)
	}
	return rulesToModels(rows), nil
}

func listRules(ctx context.Context, q sqlx.QueryerContext) ([]models.ReminderRule, error) {
	var rows []ruleRow
	if err := sqlx.SelectContext(ctx, q, &rows, "SELECT "+ruleColumns+" FROM reminder_rules"); err != nil {
		return nil, fmt.Errorf("failed to list reminder rules: %w", err)
	}
	return rulesToModels(rows), nil
}

func rulesToModels(rows []ruleRow) []models.ReminderRule {
	out := make([]models.ReminderRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out
}

// DeleteRule removes the override so the template defaults apply again.
func (s *Store) DeleteRule(ctx context.Context, vehicleID, serviceTypeID string) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM reminder_rules WHERE vehicle_id = ? AND service_type_id = ?", vehicleID, serviceTypeID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder rule: %w", err)
	}
	return requireAffected(res, "reminder rule", vehicleID+"/"+serviceTypeID)
}
