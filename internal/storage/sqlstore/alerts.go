package sqlstore

import (
	"context"
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type alertRow struct {
	ID            string `db:"id"`
	VehicleID     string `db:"vehicle_id"`
	ServiceTypeID string `db:"service_type_id"`
	Title         string `db:"title"`
	Body          string `db:"body"`
	Category      string `db:"category"`
	FireAt        string `db:"fire_at"`
	CreatedAt     string `db:"created_at"`
}

func (r alertRow) toModel() (models.PendingAlert, error) {
	fireAt, err := parseTime(r.FireAt)
	if err != nil {
		return models.PendingAlert{}, fmt.Errorf("alert %s: invalid fire_at: %w", r.ID, err)
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return models.PendingAlert{}, fmt.Errorf("alert %s: invalid created_at: %w", r.ID, err)
	}
	return models.PendingAlert{
		ID:            r.ID,
		VehicleID:     r.VehicleID,
		ServiceTypeID: r.ServiceTypeID,
		Title:         r.Title,
		Body:          r.Body,
		Category:      r.Category,
		FireAt:        fireAt,
		CreatedAt:     created,
	}, nil
}

// ClearPending removes every installed alert.
func (s *Store) ClearPending(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pending_alerts"); err != nil {
		return fmt.Errorf("failed to clear pending alerts: %w", err)
	}
	return nil
}

// InstallPending stores an alert, replacing any alert with the same ID.
func (s *Store) InstallPending(ctx context.Context, a models.PendingAlert) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO pending_alerts (id, vehicle_id, service_type_id, title, body, category, fire_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			category = excluded.category,
			fire_at = excluded.fire_at,
			created_at = excluded.created_at`,
		a.ID, a.VehicleID, a.ServiceTypeID, a.Title, a.Body, a.Category, formatTime(a.FireAt), formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to install alert: %w", err)
	}
	return nil
}

func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM pending_alerts"); err != nil {
		return 0, fmt.Errorf("failed to count pending alerts: %w", err)
	}
	return n, nil
}

// ListPending returns installed alerts ordered by trigger time.
func (s *Store) ListPending(ctx context.Context) ([]models.PendingAlert, error) {
	var rows []alertRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT id, vehicle_id, service_type_id, title, body, category, fire_at, created_at FROM pending_alerts ORDER BY fire_at, id"); err != nil {
		return nil, fmt.Errorf("failed to list pending alerts: %w", err)
	}
	out := make([]models.PendingAlert, 0, len(rows))
	for _, r := range rows {
		a, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) RemovePending(ctx context.Context, id string) error {
	if _, err := s.exec(ctx, s.db, "DELETE FROM pending_alerts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to remove alert: %w", err)
	}
	return nil
}
