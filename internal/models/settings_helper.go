package models

import (
	"fmt"
	"strconv"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/utils"
)

// DefaultSettings returns the settings a fresh database starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		FireHour:             constants.DefaultFireHour,
		FireMinute:           constants.DefaultFireMinute,
		Timezone:             constants.DefaultTimezone,
		CurrencySymbol:       constants.DefaultCurrencySymbol,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingFireHour:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.FireHour = n
		case constants.SettingFireMinute:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.FireMinute = n
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCurrencySymbol:
			settings.CurrencySymbol = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingFireHour:             strconv.Itoa(settings.FireHour),
		constants.SettingFireMinute:           strconv.Itoa(settings.FireMinute),
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingCurrencySymbol:       settings.CurrencySymbol,
	}
}

func (s Settings) Validate() error {
	if s.FireHour < 0 || s.FireHour > 23 {
		return fmt.Errorf("notification hour must be between 0 and 23, got %d", s.FireHour)
	}
	if s.FireMinute < 0 || s.FireMinute > 59 {
		return fmt.Errorf("notification minute must be between 0 and 59, got %d", s.FireMinute)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	return nil
}
