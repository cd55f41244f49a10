package constants

import "time"

const (
	AppName            = "agenda"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/agenda"
	DefaultConfigPath  = "~/.config/agenda/agenda.db"
	DefaultConfigFile  = "~/.config/agenda/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "agenda-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "agenda-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.pedromssoares.agenda"
	AlertCategory          = "SERVICE_REMINDER"

	// Storage drivers
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// Notifier sinks
	SinkTray   = "tray"
	SinkMQTT   = "mqtt"
	SinkStdout = "stdout"

	DefaultMQTTTopicPrefix = "agenda/alerts"
	DefaultCurrencySymbol  = "$"

	// MaxPhotosPerEvent caps the photo blobs attached to one service event.
	MaxPhotosPerEvent = 5
)
