package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

// openSourceFunc opens the database --source points at.
var openSourceFunc = func(source string) (storage.Provider, error) {
	return storage.Open(storage.Target{Path: source})
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if ctx.Store.Driver() != constants.DriverSQLite {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDB, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDB
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Background()); err != nil {
		return err
	}
	ctx.Printf("Initialized agenda storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	ctx.AfterEdit()
	return nil
}

// copyData copies every record from the source database. Service types are
// matched by name so the defaults seeded by Init are not duplicated.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	src, err := openSourceFunc(c.Source)
	if err != nil {
		return err
	}
	bg := ctx.Background()
	if err := src.Load(bg); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()
	dst := ctx.Store

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(bg, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying service types...")
	srcTypes, err := src.ListServiceTypes(bg)
	if err != nil {
		return fmt.Errorf("failed to get service types from source: %w", err)
	}
	dstTypes, err := dst.ListServiceTypes(bg)
	if err != nil {
		return err
	}
	byName := make(map[string]models.ServiceTypeTemplate, len(dstTypes))
	for _, t := range dstTypes {
		byName[t.Name] = t
	}
	typeIDs := make(map[string]string, len(srcTypes))
	for _, t := range srcTypes {
		srcID := t.ID
		if existing, ok := byName[t.Name]; ok {
			t.ID = existing.ID
			if err := dst.UpdateServiceType(bg, t); err != nil {
				return fmt.Errorf("failed to update service type %s: %w", t.Name, err)
			}
		} else if err := dst.AddServiceType(bg, t); err != nil {
			return fmt.Errorf("failed to add service type %s: %w", t.Name, err)
		}
		typeIDs[srcID] = t.ID
	}
	ctx.Printf("    Copied %d service types\n", len(srcTypes))

	ctx.Println("  Copying vehicles...")
	vehicles, err := src.ListVehicles(bg)
	if err != nil {
		return fmt.Errorf("failed to get vehicles from source: %w", err)
	}
	for _, v := range vehicles {
		if err := dst.AddVehicle(bg, v); err != nil {
			return fmt.Errorf("failed to add vehicle %s: %w", v.Name, err)
		}
		rules, err := src.ListRules(bg, v.ID)
		if err != nil {
			return fmt.Errorf("failed to get reminder rules from source: %w", err)
		}
		for _, r := range rules {
			r.ServiceTypeID = typeIDs[r.ServiceTypeID]
			if err := dst.SetRule(bg, r); err != nil {
				return fmt.Errorf("failed to add reminder rule %s: %w", r.ID, err)
			}
		}
	}
	ctx.Printf("    Copied %d vehicles\n", len(vehicles))

	ctx.Println("  Copying service history...")
	events, err := src.ListEvents(bg, storage.EventFilter{WithPhotos: true})
	if err != nil {
		return fmt.Errorf("failed to get service events from source: %w", err)
	}
	for _, e := range events {
		e.ServiceTypeID = typeIDs[e.ServiceTypeID]
		if err := dst.AddEvent(bg, e); err != nil {
			return fmt.Errorf("failed to add service event %s: %w", e.ID, err)
		}
	}
	ctx.Printf("    Copied %d service events\n", len(events))
	return nil
}
