package constants

import "time"

const (
	// Due-status thresholds. A service is "due soon" when it is within either window.
	DueSoonDays       = 30
	DueSoonDistanceKm = 1000.0

	// Notification selection: upcoming services are only alerted on inside these windows.
	MaxNotifications          = 40
	NotifyUpcomingDays        = 60
	NotifyUpcomingDistanceKm  = 2000.0
	NotifyImmediateDistanceKm = 500.0

	// Trigger timing
	DefaultFireHour   = 9
	DefaultFireMinute = 0
	ImmediateDelay    = 5 * time.Second
	FallbackDelay     = 24 * time.Hour

	// Distance conversion factors (storage is always kilometers)
	KmToMilesFactor = 0.621371
	MilesToKmFactor = 1.60934
)

func init() {
	// The notification windows must contain the due-soon windows, otherwise a
	// dueSoon service could be less notifiable than an upcoming one.
	if NotifyUpcomingDays < DueSoonDays || NotifyUpcomingDistanceKm < DueSoonDistanceKm {
		panic("notification windows must be at least as wide as the due-soon windows")
	}
}
