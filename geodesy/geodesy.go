// Package geodesy contains great-circle math on the earth: distances, destination points, the bounding box of a
// circle and the number of geohash bits fitting the size of a circle.
//
// Distances of the spherical functions are based on the mean earth radius. Kilometers are the default unit, functions
// with a "meters" suffix take or return meters.
package geodesy

import "math"

const (
	// EarthRadius is the mean earth radius in kilometers.
	EarthRadius = 6371.0

	EarthRadiusInMeters = EarthRadius * 1000

	// WGS-84 ellipsoid in kilometers
	EquatorialRadius = 6378.137
	PolarRadius      = 6356.752314245
	Flattening       = 1 / 298.257223563
)

func degRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func radDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

func wrapLongitude(longitude float64) float64 {
	if longitude >= -180 && longitude <= 180 {
		return longitude
	}

	longitude = math.Mod(longitude+180, 360)
	if longitude < 0 {
		longitude += 360
	}

	return longitude - 180
}

func validateCoordinates(coordinates ...float64) error {
	for i := 0; i+1 < len(coordinates); i += 2 {
		if err := validateCoordinate(coordinates[i], coordinates[i+1]); err != nil {
			return err
		}
	}
	return nil
}
