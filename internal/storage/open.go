package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/postgres"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/sqlite"
)

// ErrEmbeddedCredentials is returned when a PostgreSQL target carries a password.
var ErrEmbeddedCredentials = postgres.ErrEmbeddedCredentials

// Target selects the database a provider opens.
type Target struct {
	Driver string // constants.DriverSQLite or constants.DriverPostgres; empty infers from Path/DSN
	Path   string // SQLite file path
	DSN    string // PostgreSQL connection string without a password
	// Secret marks a DSN read from the OS keyring or the environment, where
	// an embedded password is allowed.
	Secret bool
}

// ResolveTarget fills in the driver: a postgres:// URL in Path or a non-empty
// DSN selects PostgreSQL, everything else SQLite.
func ResolveTarget(t Target) Target {
	if postgres.IsConnString(t.Path) {
		t.DSN = t.Path
		t.Path = ""
	}
	if t.Driver == "" {
		if t.DSN != "" {
			t.Driver = constants.DriverPostgres
		} else {
			t.Driver = constants.DriverSQLite
		}
	}
	return t
}

// Open builds the provider for t. It does not connect; call Init or Load.
func Open(t Target) (Provider, error) {
	t = ResolveTarget(t)

	switch t.Driver {
	case constants.DriverPostgres:
		if t.DSN == "" {
			return nil, fmt.Errorf("postgres driver selected but no connection string configured")
		}
		if _, err := postgres.ValidateConnString(t.DSN); err != nil {
			if !t.Secret || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(t.DSN), nil
	case constants.DriverSQLite:
		path, err := ExpandPath(t.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", t.Driver)
	}
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// contains a password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return err == postgres.ErrEmbeddedCredentials
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		path = constants.DefaultConfigPath
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
