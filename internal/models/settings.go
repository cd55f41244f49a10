package models

// Settings represents application-wide settings stored alongside the data
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`    // master switch for installing alerts
	FireHour             int    `json:"notification_fire_hour"`   // local hour alerts with a due date fire at
	FireMinute           int    `json:"notification_fire_minute"` // local minute alerts with a due date fire at
	Timezone             string `json:"timezone"`                 // IANA timezone name, or "Local"
	CurrencySymbol       string `json:"currency_symbol"`          // prefix used when printing costs
}
