// Package export renders service history for use outside the app.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/units"
)

// Header is the first CSV line.
const Header = "vehicleName,serviceType,dateISO,odometerDisplayed,odometerUnit,cost,notes"

const unknown = "Unknown"

// WriteCSV writes one row per event, oldest first. Odometers are shown in the
// owning vehicle's unit; events whose vehicle or type is missing are written
// with "Unknown" and the raw kilometer reading.
func WriteCSV(w io.Writer, events []models.ServiceEvent, vehicles []models.Vehicle, types []models.ServiceTypeTemplate) error {
	vehicleByID := make(map[string]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
	}
	typeByID := make(map[string]models.ServiceTypeTemplate, len(types))
	for _, t := range types {
		typeByID[t.ID] = t
	}

	sorted := make([]models.ServiceEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return err
	}
	for _, e := range sorted {
		if _, err := io.WriteString(w, row(e, vehicleByID, typeByID)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// GenerateCSV is WriteCSV into a string.
func GenerateCSV(events []models.ServiceEvent, vehicles []models.Vehicle, types []models.ServiceTypeTemplate) string {
	var b strings.Builder
	_ = WriteCSV(&b, events, vehicles, types)
	return b.String()
}

func row(e models.ServiceEvent, vehicles map[string]models.Vehicle, types map[string]models.ServiceTypeTemplate) string {
	vehicleName, typeName := unknown, unknown
	odometer := fmt.Sprintf("%.0f", e.OdometerKm)
	unit := models.UnitKilometers.Abbreviation()

	if v, ok := vehicles[e.VehicleID]; ok {
		vehicleName = v.Name
		unit = v.UnitPreference.Abbreviation()
		odometer = fmt.Sprintf("%.0f", units.ToDisplayValue(e.OdometerKm, v.UnitPreference))
	}
	if t, ok := types[e.ServiceTypeID]; ok {
		typeName = t.Name
	}

	cost := ""
	if e.Cost != nil {
		cost = fmt.Sprintf("%.2f", *e.Cost)
	}
	notes := ""
	if e.Notes != nil {
		notes = *e.Notes
	}

	return strings.Join([]string{
		escape(vehicleName),
		escape(typeName),
		e.Date.UTC().Format(time.RFC3339),
		odometer,
		unit,
		cost,
		escape(notes),
	}, ",")
}

// escape quotes a field only when it holds a comma, a quote or a newline.
func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
