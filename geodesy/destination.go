package geodesy

import (
	"geokit/validate"
	"math"
)

// Destination projects the coordinate along the great circle with the given initial bearing in degrees over the given
// distance in kilometers. The returned longitude is wrapped into [-180, 180].
func Destination(latitude float64, longitude float64, distance float64, bearing float64) (float64, float64, error) {
	if err := validateCoordinate(latitude, longitude); err != nil {
		return 0, 0, err
	}
	distance, err := validate.Distance(distance)
	if err != nil {
		return 0, 0, err
	}
	bearing, err = validate.Bearing(bearing)
	if err != nil {
		return 0, 0, err
	}

	phi1 := degRad(latitude)
	lambda1 := degRad(longitude)
	theta := degRad(bearing)
	delta := distance / EarthRadius

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(math.Max(-1, math.Min(1, sinPhi2)))
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(phi1), math.Cos(delta)-math.Sin(phi1)*sinPhi2)

	return radDeg(phi2), wrapLongitude(radDeg(lambda2)), nil
}

func DestinationInMeters(latitude float64, longitude float64, distance float64, bearing float64) (float64, float64, error) {
	return Destination(latitude, longitude, distance/1000, bearing)
}
