package geodesy

import (
	"geokit/validate"
	"strings"
)

// Unit is a distance unit as known from the GEODIST command of Redis.
type Unit string

const (
	Meters     Unit = "m"
	Kilometers Unit = "km"
	Feet       Unit = "ft"
	Miles      Unit = "mi"
)

var unitsInMeters = map[Unit]float64{
	Meters:     1,
	Kilometers: 1000,
	Feet:       0.3048,
	Miles:      1609.34,
}

func ParseUnit(s string) (Unit, error) {
	unit := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := unitsInMeters[unit]; !ok {
		return "", validate.NewTypeError("unit", s, "one of m, km, ft, mi")
	}
	return unit, nil
}

// ToMeters converts the distance given in this unit into meters.
func (u Unit) ToMeters(distance float64) float64 {
	return distance * unitsInMeters[u]
}

// FromMeters converts the distance given in meters into this unit.
func (u Unit) FromMeters(distance float64) float64 {
	return distance / unitsInMeters[u]
}
