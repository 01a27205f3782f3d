package geodesy

import (
	"github.com/hauke96/sigolo/v2"
	"math"
)

const (
	vincentyMaxIterations = 100
	vincentyConvergence   = 1e-12
)

// VincentyDistance returns the distance in kilometers between two coordinates on the WGS-84 ellipsoid using the
// inverse formula of Vincenty. The result is 0 for identical points and for nearly antipodal points on which the
// iteration doesn't converge.
func VincentyDistance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	if err := validateCoordinates(lat1, lon1, lat2, lon2); err != nil {
		return 0, err
	}

	l := degRad(lon2 - lon1)
	u1 := math.Atan((1 - Flattening) * math.Tan(degRad(lat1)))
	u2 := math.Atan((1 - Flattening) * math.Tan(degRad(lat2)))
	sinU1, cosU1 := math.Sin(u1), math.Cos(u1)
	sinU2, cosU2 := math.Sin(u2), math.Cos(u2)

	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64

	lambda := l
	converged := false
	for i := 0; i < vincentyMaxIterations; i++ {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)

		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) + math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			// Identical points
			return 0, nil
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		// Both points on the equator
		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		c := Flattening / 16 * cosSqAlpha * (4 + Flattening*(4-3*cosSqAlpha))

		previousLambda := lambda
		lambda = l + (1-c)*Flattening*sinAlpha*(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-previousLambda) < vincentyConvergence {
			sigolo.Tracef("Vincenty converged after %d iterations", i+1)
			converged = true
			break
		}
	}

	if !converged {
		sigolo.Debugf("Vincenty did not converge for (%f, %f) and (%f, %f)", lat1, lon1, lat2, lon2)
		return 0, nil
	}

	uSq := cosSqAlpha * (EquatorialRadius*EquatorialRadius - PolarRadius*PolarRadius) / (PolarRadius * PolarRadius)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return PolarRadius * a * (sigma - deltaSigma), nil
}

func VincentyDistanceInMeters(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	distance, err := VincentyDistance(lat1, lon1, lat2, lon2)
	return distance * 1000, err
}
