// Package units converts distances between the stored unit (kilometers) and a
// vehicle's display unit.
package units

import (
	"fmt"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type unitDef struct {
	fromKm float64
	toKm   float64
}

var unitTable = map[models.DistanceUnit]unitDef{
	models.UnitKilometers: {fromKm: 1, toKm: 1},
	models.UnitMiles:      {fromKm: constants.KmToMilesFactor, toKm: constants.MilesToKmFactor},
}

func lookup(unit models.DistanceUnit) unitDef {
	if def, ok := unitTable[unit]; ok {
		return def
	}
	return unitTable[models.UnitKilometers]
}

func KmToMiles(km float64) float64 {
	return km * constants.KmToMilesFactor
}

func MilesToKm(miles float64) float64 {
	return miles * constants.MilesToKmFactor
}

// ToDisplayValue converts a stored kilometer value into unit.
func ToDisplayValue(km float64, unit models.DistanceUnit) float64 {
	return km * lookup(unit).fromKm
}

// ToStoredValue converts a value entered in unit into kilometers.
func ToStoredValue(value float64, unit models.DistanceUnit) float64 {
	return value * lookup(unit).toKm
}

// FormatDistance renders km in unit with the given number of decimals,
// e.g. "6214 mi".
func FormatDistance(km float64, unit models.DistanceUnit, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f %s", decimals, ToDisplayValue(km, unit), unit.Abbreviation())
}

// FormatCurrency renders an amount with two decimals after symbol.
func FormatCurrency(amount float64, symbol string) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
