package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

const (
	bodySeparator  = " • "
	mediumDateForm = "Jan 2, 2006"
)

// RenderAlert builds the pending alert for a, firing at fireAt.
func RenderAlert(a models.DueAssessment, now, fireAt time.Time) models.PendingAlert {
	return models.PendingAlert{
		ID:            a.AlertID(),
		VehicleID:     a.Vehicle.ID,
		ServiceTypeID: a.ServiceType.ID,
		Title:         Title(a),
		Body:          Body(a, now),
		Category:      constants.AlertCategory,
		FireAt:        fireAt,
		CreatedAt:     now,
	}
}

func Title(a models.DueAssessment) string {
	return "Service Due: " + a.ServiceType.Name
}

// Body describes why the service is due, e.g.
// "Civic • Due in 12 days • or in 840 km".
func Body(a models.DueAssessment, now time.Time) string {
	parts := []string{a.Vehicle.Name}
	unit := a.Vehicle.UnitPreference

	switch {
	case a.IsOverdueByDate(now):
		parts = append(parts, "Overdue since "+a.DueDate.Format(mediumDateForm))
	case a.IsOverdueByDistance():
		parts = append(parts, "Overdue at "+units.FormatDistance(*a.DueOdometerKm, unit, 0))
	default:
		if days := a.DaysUntilDue(now); days != nil && *days > 0 {
			parts = append(parts, fmt.Sprintf("Due in %d days", *days))
		}
		if dist := a.DistanceUntilDueKm(); dist != nil && *dist > 0 {
			parts = append(parts, "or in "+units.FormatDistance(*dist, unit, 0))
		}
	}

	return strings.Join(parts, bodySeparator)
}
