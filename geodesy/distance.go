package geodesy

import (
	"geokit/validate"
	"math"
)

func validateCoordinate(latitude float64, longitude float64) error {
	if _, err := validate.Latitude(latitude); err != nil {
		return err
	}
	_, err := validate.Longitude(longitude)
	return err
}

// Distance returns the great-circle distance in kilometers between two coordinates using the haversine formula.
func Distance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	if err := validateCoordinates(lat1, lon1, lat2, lon2); err != nil {
		return 0, err
	}

	phi1 := degRad(lat1)
	phi2 := degRad(lat2)

	u := math.Sin((phi2 - phi1) / 2)
	v := math.Sin(degRad(lon2-lon1) / 2)

	h := u*u + math.Cos(phi1)*math.Cos(phi2)*v*v

	// Rounding may push h slightly above 1 for antipodal points
	return 2 * EarthRadius * math.Asin(math.Sqrt(math.Min(1, h))), nil
}

func DistanceInMeters(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	distance, err := Distance(lat1, lon1, lat2, lon2)
	return distance * 1000, err
}

// Bearing returns the initial bearing in degrees within [0, 360) of the great circle from the first to the second
// coordinate. The bearing between two identical coordinates is 0.
func Bearing(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	if err := validateCoordinates(lat1, lon1, lat2, lon2); err != nil {
		return 0, err
	}

	phi1 := degRad(lat1)
	phi2 := degRad(lat2)
	deltaLambda := degRad(lon2 - lon1)

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	return validate.Bearing(radDeg(math.Atan2(y, x)))
}
