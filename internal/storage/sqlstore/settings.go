package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// GetSettings returns the stored settings, with defaults for missing keys.
func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	var rows []settingRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT key, value FROM settings"); err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	data := make(map[string]string, len(rows))
	for _, r := range rows {
		data[r.Key] = r.Value
	}
	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for key, value := range models.SettingsToMap(settings) {
			if _, err := s.exec(ctx, tx, `
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

// HasSettings reports whether any setting has been stored yet.
func (s *Store) HasSettings(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM settings"); err != nil {
		return false, err
	}
	return count > 0, nil
}
