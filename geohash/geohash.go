// Package geohash encodes coordinates into geohashes and derives cell geometry from them.
//
// A geohash is produced by bisecting the whole earth [-90,90]x[-180,180] over and over again, alternating between the
// longitude and the latitude axis (longitude first). Each bisection emits one bit: 1 when the coordinate lies in the
// upper half and 0 otherwise. A coordinate exactly on the midpoint belongs to the lower half.
//
// Three representations of the same bit sequence exist:
//   - string: 5 bits per character of a base-32 alphabet, up to 22 characters (110 bits)
//   - uint64: 1 to 52 bits
//   - *big.Int: 1 to 110 bits
package geohash

import (
	"geokit/validate"
	"github.com/paulmach/orb"
)

const (
	Alphabet    = "0123456789bcdefghjkmnpqrstuvwxyz"
	BitsPerChar = 5

	// Limiter sorts after every character of the alphabet and marks open ended query ranges.
	Limiter = "~"

	DefaultPrecision = 9
	DefaultBits      = 52
	DefaultBigBits   = 64
)

// alphabetIndex maps a byte to its position in the alphabet or -1.
var alphabetIndex = func() [256]int8 {
	var index [256]int8
	for i := range index {
		index[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		index[Alphabet[i]] = int8(i)
	}
	return index
}()

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoordinate(latitude float64, longitude float64) (Coordinate, error) {
	latitude, err := validate.Latitude(latitude)
	if err != nil {
		return Coordinate{}, err
	}
	longitude, err = validate.Longitude(longitude)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// Point returns the coordinate as orb point, which uses the lon/lat order.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Decoded is the center of a cell together with its error margin, i.e. half the cell size along each axis.
type Decoded struct {
	Coordinate
	Error Coordinate `json:"error"`
}
