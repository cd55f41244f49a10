package constants

const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingFireHour             = "notification_fire_hour"
	SettingFireMinute           = "notification_fire_minute"
	SettingTimezone             = "timezone"
	SettingCurrencySymbol       = "currency_symbol"

	DefaultNotificationsEnabled = true
	DefaultTimezone             = "Local" // Use system local timezone by default
)
