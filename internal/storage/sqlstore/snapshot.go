package sqlstore

import (
	"context"

	"github.com/pedromssoares/service-agenda-for-cars/internal/reminder"
)

// Snapshot reads the four collections the due calculation needs inside one
// transaction so they are consistent with each other.
func (s *Store) Snapshot(ctx context.Context) (reminder.Snapshot, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return reminder.Snapshot{}, err
	}
	defer tx.Rollback()

	var snap reminder.Snapshot
	if snap.Vehicles, err = listVehicles(ctx, tx); err != nil {
		return reminder.Snapshot{}, err
	}
	if snap.Templates, err = listServiceTypes(ctx, tx); err != nil {
		return reminder.Snapshot{}, err
	}
	if snap.Events, err = listEvents(ctx, tx); err != nil {
		return reminder.Snapshot{}, err
	}
	if snap.Rules, err = listRules(ctx, tx); err != nil {
		return reminder.Snapshot{}, err
	}

	return snap, tx.Commit()
}
