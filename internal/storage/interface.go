package storage

import (
	"context"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/reminder"
	"github.com/pedromssoares/service-agenda-for-cars/internal/storage/sqlstore"
)

// EventFilter narrows ListEvents. Empty fields match everything.
type EventFilter = sqlstore.EventFilter

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Schema
	SchemaVersion() (current, latest int, err error)

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Vehicles
	AddVehicle(ctx context.Context, v models.Vehicle) error
	GetVehicle(ctx context.Context, id string) (models.Vehicle, error)
	GetVehicleByName(ctx context.Context, name string) (models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error

	// Service types
	AddServiceType(ctx context.Context, t models.ServiceTypeTemplate) error
	GetServiceType(ctx context.Context, id string) (models.ServiceTypeTemplate, error)
	GetServiceTypeByName(ctx context.Context, name string) (models.ServiceTypeTemplate, error)
	ListServiceTypes(ctx context.Context) ([]models.ServiceTypeTemplate, error)
	UpdateServiceType(ctx context.Context, t models.ServiceTypeTemplate) error
	DeleteServiceType(ctx context.Context, id string) error
	SeedServiceTypes(ctx context.Context, templates []models.ServiceTypeTemplate) (int, error)

	// Reminder rules
	SetRule(ctx context.Context, r models.ReminderRule) error
	GetRule(ctx context.Context, vehicleID, serviceTypeID string) (models.ReminderRule, error)
	ListRules(ctx context.Context, vehicleID string) ([]models.ReminderRule, error)
	DeleteRule(ctx context.Context, vehicleID, serviceTypeID string) error

	// Service events
	AddEvent(ctx context.Context, e models.ServiceEvent) error
	GetEvent(ctx context.Context, id string) (models.ServiceEvent, error)
	ListEvents(ctx context.Context, f EventFilter) ([]models.ServiceEvent, error)
	UpdateEvent(ctx context.Context, e models.ServiceEvent) error
	DeleteEvent(ctx context.Context, id string) error

	// Due calculation input
	Snapshot(ctx context.Context) (reminder.Snapshot, error)

	// Pending alerts
	ClearPending(ctx context.Context) error
	InstallPending(ctx context.Context, a models.PendingAlert) error
	PendingCount(ctx context.Context) (int, error)
	ListPending(ctx context.Context) ([]models.PendingAlert, error)
	RemovePending(ctx context.Context, id string) error

	// Utils
	GetConfigPath() string
	Driver() string
}
