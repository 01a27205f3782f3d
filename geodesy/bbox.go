package geodesy

import (
	"geokit/validate"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"math"
)

// BoundingBoxAround returns the bounding box of the circle with the given radius in meters around the coordinate.
//
// A circle reaching over a pole covers all longitudes, its latitude is clamped to the pole. A circle crossing the
// antimeridian also covers all longitudes, so that the minimum of the box never exceeds its maximum.
func BoundingBoxAround(latitude float64, longitude float64, radius float64) (orb.Bound, error) {
	if err := validateCoordinate(latitude, longitude); err != nil {
		return orb.Bound{}, err
	}
	radius, err := validate.Distance(radius)
	if err != nil {
		return orb.Bound{}, err
	}

	angularRadius := radius / EarthRadiusInMeters
	minLat := latitude - radDeg(angularRadius)
	maxLat := latitude + radDeg(angularRadius)

	if minLat <= validate.MinLatitude || maxLat >= validate.MaxLatitude {
		sigolo.Tracef("Circle around (%f, %f) with radius %fm crosses a pole", latitude, longitude, radius)
		return orb.Bound{
			Min: orb.Point{validate.MinLongitude, math.Max(minLat, validate.MinLatitude)},
			Max: orb.Point{validate.MaxLongitude, math.Min(maxLat, validate.MaxLatitude)},
		}, nil
	}

	deltaLon := radDeg(math.Asin(math.Sin(angularRadius) / math.Cos(degRad(latitude))))
	minLon := longitude - deltaLon
	maxLon := longitude + deltaLon

	if minLon < validate.MinLongitude || maxLon > validate.MaxLongitude {
		sigolo.Tracef("Circle around (%f, %f) with radius %fm crosses the antimeridian", latitude, longitude, radius)
		minLon = validate.MinLongitude
		maxLon = validate.MaxLongitude
	}

	return orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}, nil
}
