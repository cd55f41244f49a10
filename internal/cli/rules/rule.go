package rules

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pedromssoares/service-agenda-for-cars/internal/cli"
	apperrors "github.com/pedromssoares/service-agenda-for-cars/internal/errors"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

type RuleSetCmd struct {
	Vehicle  string   `arg:"" help:"Vehicle ID or name."`
	Type     string   `arg:"" help:"Service type ID or name."`
	Days     *int     `help:"Custom interval in days."`
	Distance *float64 `help:"Custom interval in the vehicle's distance unit."`
	Disabled bool     `help:"Store the rule disabled so the type's defaults apply."`
}

func (c *RuleSetCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	t, err := ctx.FindServiceType(c.Type)
	if err != nil {
		return err
	}
	if c.Days == nil && c.Distance == nil {
		return apperrors.Invalid("a rule needs --days, --distance or both")
	}

	rule := models.ReminderRule{
		ID:            uuid.New().String(),
		VehicleID:     v.ID,
		ServiceTypeID: t.ID,
		DaysInterval:  c.Days,
		Enabled:       !c.Disabled,
	}
	if c.Distance != nil {
		if math.IsNaN(*c.Distance) || math.IsInf(*c.Distance, 0) || *c.Distance <= 0 {
			return apperrors.Invalid("distance interval must be positive")
		}
		km := units.ToStoredValue(*c.Distance, v.UnitPreference)
		rule.DistanceIntervalKm = &km
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SetRule(ctx.Background(), rule); err != nil {
		return fmt.Errorf("failed to save reminder rule: %w", err)
	}

	ctx.Printf("✓ %s on %s: %s\n", t.Name, v.Name, describe(rule.DaysInterval, rule.DistanceIntervalKm, v.UnitPreference))
	ctx.AfterEdit()
	return nil
}

type RuleClearCmd struct {
	Vehicle string `arg:"" help:"Vehicle ID or name."`
	Type    string `arg:"" help:"Service type ID or name."`
}

func (c *RuleClearCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	t, err := ctx.FindServiceType(c.Type)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteRule(ctx.Background(), v.ID, t.ID); err != nil {
		if apperrors.IsNotFound(err) {
			ctx.Printf("%s on %s already uses the default intervals\n", t.Name, v.Name)
			return nil
		}
		return fmt.Errorf("failed to clear reminder rule: %w", err)
	}

	ctx.Printf("✓ %s on %s reverted to the default intervals\n", t.Name, v.Name)
	ctx.AfterEdit()
	return nil
}

type RuleListCmd struct {
	Vehicle string `arg:"" help:"Vehicle ID or name."`
}

func (c *RuleListCmd) Run(ctx *cli.Context) error {
	v, err := ctx.FindVehicle(c.Vehicle)
	if err != nil {
		return err
	}
	bg := ctx.Background()
	templates, err := ctx.Store.ListServiceTypes(bg)
	if err != nil {
		return fmt.Errorf("failed to list service types: %w", err)
	}
	rules, err := ctx.Store.ListRules(bg, v.ID)
	if err != nil {
		return fmt.Errorf("failed to list reminder rules: %w", err)
	}
	byType := make(map[string]models.ReminderRule, len(rules))
	for _, r := range rules {
		byType[r.ServiceTypeID] = r
	}

	ctx.Printf("Reminder intervals for %s:\n", v.Name)
	for _, t := range templates {
		if !t.IsEnabled {
			continue
		}
		r, ok := byType[t.ID]
		if ok && r.Enabled {
			ctx.Printf("  %-28s %s\n", t.Name, describe(r.DaysInterval, r.DistanceIntervalKm, v.UnitPreference))
			continue
		}
		line := "(default) " + describe(t.DefaultIntervalDays, t.DefaultIntervalDistanceKm, v.UnitPreference)
		if ok {
			line += " [custom rule disabled]"
		}
		ctx.Printf("  %-28s %s\n", t.Name, line)
	}
	return nil
}

func describe(days *int, km *float64, unit models.DistanceUnit) string {
	var parts []string
	if days != nil {
		parts = append(parts, fmt.Sprintf("every %d days", *days))
	}
	if km != nil {
		parts = append(parts, "every "+units.FormatDistance(*km, unit, 0))
	}
	switch len(parts) {
	case 0:
		return "no interval"
	case 1:
		return parts[0]
	default:
		return parts[0] + " or " + parts[1]
	}
}
