package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type vehicleRow struct {
	ID                string  `db:"id"`
	Name              string  `db:"name"`
	UnitPreference    string  `db:"unit_preference"`
	CurrentOdometerKm float64 `db:"current_odometer_km"`
	CreatedAt         string  `db:"created_at"`
}

const vehicleColumns = "id, name, unit_preference, current_odometer_km, created_at"

func (r vehicleRow) toModel() (models.Vehicle, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("vehicle %s: invalid created_at: %w", r.ID, err)
	}
	return models.Vehicle{
		ID:                r.ID,
		Name:              r.Name,
		UnitPreference:    models.DistanceUnit(r.UnitPreference),
		CurrentOdometerKm: r.CurrentOdometerKm,
		CreatedAt:         created,
	}, nil
}

func (s *Store) AddVehicle(ctx context.Context, v models.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO vehicles (id, name, unit_preference, current_odometer_km, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.Name, string(v.UnitPreference), v.CurrentOdometerKm, formatTime(v.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

func (s *Store) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	var row vehicleRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+vehicleColumns+" FROM vehicles WHERE id = ?"), id)
	if err != nil {
		return models.Vehicle{}, notFound(err, "vehicle", id)
	}
	return row.toModel()
}

// GetVehicleByName looks a vehicle up by its exact name.
func (s *Store) GetVehicleByName(ctx context.Context, name string) (models.Vehicle, error) {
	var row vehicleRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+vehicleColumns+" FROM vehicles WHERE name = ? ORDER BY created_at LIMIT 1"), name)
	if err != nil {
		return models.Vehicle{}, notFound(err, "vehicle", name)
	}
	return row.toModel()
}

func (s *Store) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return listVehicles(ctx, s.db)
}

func listVehicles(ctx context.Context, q sqlx.QueryerContext) ([]models.Vehicle, error) {
	var rows []vehicleRow
	if err := sqlx.SelectContext(ctx, q, &rows, "SELECT "+vehicleColumns+" FROM vehicles ORDER BY name, created_at"); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	out := make([]models.Vehicle, 0, len(rows))
	for _, r := range rows {
		v, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	res, err := s.exec(ctx, s.db, `
		UPDATE vehicles SET name = ?, unit_preference = ?, current_odometer_km = ?
		WHERE id = ?`,
		v.Name, string(v.UnitPreference), v.CurrentOdometerKm, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return requireAffected(res, "vehicle", v.ID)
}

// DeleteVehicle removes a vehicle with its events, photos, rules and pending alerts.
func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		steps := []string{
			"DELETE FROM event_photos WHERE event_id IN (SELECT id FROM service_events WHERE vehicle_id = ?)",
			"DELETE FROM service_events WHERE vehicle_id = ?",
			"DELETE FROM reminder_rules WHERE vehicle_id = ?",
			"DELETE FROM pending_alerts WHERE vehicle_id = ?",
		}
		for _, q := range steps {
			if _, err := s.exec(ctx, tx, q, id); err != nil {
				return fmt.Errorf("failed to delete vehicle data: %w", err)
			}
		}
		res, err := s.exec(ctx, tx, "DELETE FROM vehicles WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete vehicle: %w", err)
		}
		return requireAffected(res, "vehicle", id)
	})
}
