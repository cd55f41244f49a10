package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type eventRow struct {
	ID            string          `db:"id"`
	VehicleID     string          `db:"vehicle_id"`
	ServiceTypeID string          `db:"service_type_id"`
	Date          string          `db:"date"`
	OdometerKm    float64         `db:"odometer_km"`
	Cost          sql.NullFloat64 `db:"cost"`
	Notes         sql.NullString  `db:"notes"`
}

type photoRow struct {
	EventID  string `db:"event_id"`
	Position int    `db:"position"`
	Data     []byte `db:"data"`
}

const eventColumns = "id, vehicle_id, service_type_id, date, odometer_km, cost, notes"

func (r eventRow) toModel() (models.ServiceEvent, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return models.ServiceEvent{}, fmt.Errorf("service event %s: invalid date: %w", r.ID, err)
	}
	return models.ServiceEvent{
		ID:            r.ID,
		VehicleID:     r.VehicleID,
		ServiceTypeID: r.ServiceTypeID,
		Date:          date,
		OdometerKm:    r.OdometerKm,
		Cost:          floatPtr(r.Cost),
		Notes:         stringPtr(r.Notes),
	}, nil
}

// EventFilter narrows ListEvents. Empty fields match everything.
type EventFilter struct {
	VehicleID     string
	ServiceTypeID string
	WithPhotos    bool
}

func (s *Store) AddEvent(ctx context.Context, e models.ServiceEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO service_events (id, vehicle_id, service_type_id, date, odometer_km, cost, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.VehicleID, e.ServiceTypeID, formatTime(e.Date), e.OdometerKm, nullFloat(e.Cost), nullString(e.Notes))
		if err != nil {
			return fmt.Errorf("failed to insert service event: %w", err)
		}
		return s.writePhotos(ctx, tx, e.ID, e.Photos)
	})
}

func (s *Store) GetEvent(ctx context.Context, id string) (models.ServiceEvent, error) {
	var row eventRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT "+eventColumns+" FROM service_events WHERE id = ?"), id)
	if err != nil {
		return models.ServiceEvent{}, notFound(err, "service event", id)
	}
	e, err := row.toModel()
	if err != nil {
		return models.ServiceEvent{}, err
	}

	photos, err := s.loadPhotos(ctx, []string{id})
	if err != nil {
		return models.ServiceEvent{}, err
	}
	e.Photos = photos[id]
	return e, nil
}

// ListEvents returns events newest first.
func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]models.ServiceEvent, error) {
	query := "SELECT " + eventColumns + " FROM service_events WHERE 1 = 1"
	var args []interface{}
	if f.VehicleID != "" {
		query += " AND vehicle_id = ?"
		args = append(args, f.VehicleID)
	}
	if f.ServiceTypeID != "" {
		query += " AND service_type_id = ?"
		args = append(args, f.ServiceTypeID)
	}
	query += " ORDER BY date DESC, id"

	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list service events: %w", err)
	}
	events, err := eventsToModels(rows)
	if err != nil {
		return nil, err
	}

	if f.WithPhotos && len(events) > 0 {
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		photos, err := s.loadPhotos(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range events {
			events[i].Photos = photos[events[i].ID]
		}
	}
	return events, nil
}

func listEvents(ctx context.Context, q sqlx.QueryerContext) ([]models.ServiceEvent, error) {
	var rows []eventRow
	if err := sqlx.SelectContext(ctx, q, &rows, "SELECT "+eventColumns+" FROM service_events ORDER BY date"); err != nil {
		return nil, fmt.Errorf("failed to list service events: %w", err)
	}
	return eventsToModels(rows)
}

func eventsToModels(rows []eventRow) ([]models.ServiceEvent, error) {
	out := make([]models.ServiceEvent, 0, len(rows))
	for _, r := range rows {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// UpdateEvent replaces the event's fields and its photos.
func (s *Store) UpdateEvent(ctx context.Context, e models.ServiceEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := s.exec(ctx, tx, `
			UPDATE service_events
			SET vehicle_id = ?, service_type_id = ?, date = ?, odometer_km = ?, cost = ?, notes = ?
			WHERE id = ?`,
			e.VehicleID, e.ServiceTypeID, formatTime(e.Date), e.OdometerKm, nullFloat(e.Cost), nullString(e.Notes), e.ID)
		if err != nil {
			return fmt.Errorf("failed to update service event: %w", err)
		}
		if err := requireAffected(res, "service event", e.ID); err != nil {
			return err
		}
		if _, err := s.exec(ctx, tx, "DELETE FROM event_photos WHERE event_id = ?", e.ID); err != nil {
			return fmt.Errorf("failed to clear photos: %w", err)
		}
		return s.writePhotos(ctx, tx, e.ID, e.Photos)
	})
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.exec(ctx, tx, "DELETE FROM event_photos WHERE event_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		res, err := s.exec(ctx, tx, "DELETE FROM service_events WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete service event: %w", err)
		}
		return requireAffected(res, "service event", id)
	})
}

func (s *Store) writePhotos(ctx context.Context, tx *sqlx.Tx, eventID string, photos [][]byte) error {
	for i, data := range photos {
		if _, err := s.exec(ctx, tx, "INSERT INTO event_photos (event_id, position, data) VALUES (?, ?, ?)", eventID, i, data); err != nil {
			return fmt.Errorf("failed to store photo %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) loadPhotos(ctx context.Context, eventIDs []string) (map[string][][]byte, error) {
	query, args, err := sqlx.In("SELECT event_id, position, data FROM event_photos WHERE event_id IN (?) ORDER BY event_id, position", eventIDs)
	if err != nil {
		return nil, err
	}
	var rows []photoRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}
	out := make(map[string][][]byte)
	for _, r := range rows {
		out[r.EventID] = append(out[r.EventID], r.Data)
	}
	return out, nil
}
