package geohash

import (
	"geokit/validate"
	"strings"
)

type Direction string

const (
	North     Direction = "north"
	NorthEast Direction = "northeast"
	East      Direction = "east"
	SouthEast Direction = "southeast"
	South     Direction = "south"
	SouthWest Direction = "southwest"
	West      Direction = "west"
	NorthWest Direction = "northwest"
)

// Directions lists all directions clockwise, starting in the north.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// offset is the number of cells to move along each axis.
type offset struct {
	lat float64
	lon float64
}

var directionOffsets = map[Direction]offset{
	North:     {lat: 1, lon: 0},
	NorthEast: {lat: 1, lon: 1},
	East:      {lat: 0, lon: 1},
	SouthEast: {lat: -1, lon: 1},
	South:     {lat: -1, lon: 0},
	SouthWest: {lat: -1, lon: -1},
	West:      {lat: 0, lon: -1},
	NorthWest: {lat: 1, lon: -1},
}

var directionAbbreviations = map[string]Direction{
	"n":  North,
	"ne": NorthEast,
	"e":  East,
	"se": SouthEast,
	"s":  South,
	"sw": SouthWest,
	"w":  West,
	"nw": NorthWest,
}

// ParseDirection accepts the direction names and their abbreviations ("ne" for "northeast") in any case.
func ParseDirection(s string) (Direction, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	if direction, ok := directionAbbreviations[normalized]; ok {
		return direction, nil
	}

	direction := Direction(normalized)
	if _, ok := directionOffsets[direction]; ok {
		return direction, nil
	}

	return "", validate.NewTypeError("direction", s, "one of "+strings.Join(directionNames(), ", "))
}

// Opposite returns the direction pointing the other way, e.g. south for north.
func (d Direction) Opposite() Direction {
	for i, direction := range Directions {
		if direction == d {
			return Directions[(i+4)%len(Directions)]
		}
	}
	return d
}

func (d Direction) offset() (offset, error) {
	o, ok := directionOffsets[d]
	if !ok {
		return offset{}, validate.NewTypeError("direction", string(d), "one of "+strings.Join(directionNames(), ", "))
	}
	return o, nil
}

func directionNames() []string {
	names := make([]string, len(Directions))
	for i, direction := range Directions {
		names[i] = string(direction)
	}
	return names
}
