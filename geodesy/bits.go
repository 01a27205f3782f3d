package geodesy

import (
	"geokit/validate"
	"math"
)

// BoundingBoxBits estimates the number of geohash bits at which a cell is still at least as large as the given
// distance in meters around the latitude. The result is between 1 and the ceiling, a distance of 0 results in the
// ceiling.
//
// Latitude bits halve the meridian, longitude bits halve the parallel, which shrinks towards the poles. Therefore the
// parallels at the northern and southern edge of the latitude band covered by the distance are both considered.
func BoundingBoxBits(latitude float64, distance float64, ceiling int) (int, error) {
	latitude, err := validate.Latitude(latitude)
	if err != nil {
		return 0, err
	}
	distance, err = validate.Distance(distance)
	if err != nil {
		return 0, err
	}
	if ceiling < 1 {
		return 0, validate.NewRangeError("ceiling", float64(ceiling), 1, math.Inf(1))
	}

	if distance == 0 {
		return ceiling, nil
	}

	meridian := math.Pi * EarthRadiusInMeters
	// Lon and lat bits alternate starting with longitude, so k latitude bits need 2k+1 bits in total
	bits := min(ceiling, 2*halvings(meridian, distance)+1)

	band := radDeg(distance / EarthRadiusInMeters)
	northernEdge := math.Min(validate.MaxLatitude, latitude+band)
	southernEdge := math.Max(validate.MinLatitude, latitude-band)

	for _, edge := range []float64{northernEdge, southernEdge} {
		parallel := 2 * math.Pi * EarthRadiusInMeters * math.Cos(degRad(edge))
		bits = min(bits, 2*halvings(parallel, distance))
	}

	return max(1, bits), nil
}

// halvings returns how often the length can be halved while staying at least as long as the distance. A length
// shorter than the distance results in a negative number.
func halvings(length float64, distance float64) int {
	if length <= 0 {
		return -1
	}

	n := math.Floor(math.Log2(length / distance))
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return -1
	}

	return int(n)
}
