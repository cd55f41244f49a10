package settings

import (
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable service alerts."`
	FireHour             *int    `help:"Local hour (0-23) alerts with a due date fire at."`
	FireMinute           *int    `help:"Local minute (0-59) alerts with a due date fire at."`
	Timezone             *string `help:"IANA timezone name, or Local."`
	Currency             *string `help:"Currency symbol used when printing costs."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Printf("  Currency Symbol:       %s\n", settings.CurrencySymbol)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ctx.Printf("  Alert Time:            %02d:%02d\n", settings.FireHour, settings.FireMinute)
		ctx.Println("\nDatabase:")
		ctx.Printf("  Driver:                %s\n", ctx.Store.Driver())
		if ctx.Store.Driver() == constants.DriverSQLite {
			ctx.Printf("  Path:                  %s\n", ctx.Store.GetConfigPath())
		}
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.FireHour != nil {
		settings.FireHour = *c.FireHour
		updated = true
	}
	if c.FireMinute != nil {
		settings.FireMinute = *c.FireMinute
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Currency != nil {
		settings.CurrencySymbol = *c.Currency
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(ctx.Background(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")

	// Alert times and the master switch change the pending set.
	ctx.AfterEdit()
	return nil
}
