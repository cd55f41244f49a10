// Package clitest builds command contexts backed by a temporary SQLite store.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/config"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/sqlite"
)

// Now is the fixed clock every test context runs at.
var Now = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

// New returns an initialized context writing to the returned buffer. Stored
// settings use UTC so dates render the same on every machine.
func New(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cfg := config.Default()
	cfg.Notify.Sinks = []string{"stdout"}
	cfg.Backup.Keep = 3

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:  store,
		Config: &cfg,
		Out:    &out,
		Now:    func() time.Time { return Now },
	}
	return ctx, &out
}
