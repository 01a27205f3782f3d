package validate

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	MaxPrecision = 22  // Characters of a geohash string.
	MaxBits      = 52  // Bits of the fixed-width integer form, the mantissa width of a float64.
	MaxBigBits   = 110 // Bits of the wide integer form, equal to MaxPrecision*5.
)

func Latitude(latitude float64) (float64, error) {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return 0, NewRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	return latitude, nil
}

func Longitude(longitude float64) (float64, error) {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return 0, NewRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	return longitude, nil
}

// Bearing accepts every finite angle in degrees and returns it normalized into [0, 360).
func Bearing(bearing float64) (float64, error) {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return 0, NewNonFiniteError("bearing", bearing)
	}

	bearing = math.Mod(bearing, 360)
	if bearing < 0 {
		bearing += 360
	}
	if bearing == 360 {
		// Mod of tiny negative numbers can round up to the full circle
		bearing = 0
	}

	return bearing, nil
}

func Distance(distance float64) (float64, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0, NewNonFiniteError("distance", distance)
	}
	if distance < 0 {
		return 0, NewRangeError("distance", distance, 0, math.Inf(1))
	}
	return distance, nil
}

// Precision checks the number of characters of a geohash string.
func Precision(precision int) (int, error) {
	return intInRange("precision", precision, 1, MaxPrecision)
}

// Bits checks the bit width of the fixed-width integer form.
func Bits(bits int) (int, error) {
	return intInRange("bits", bits, 1, MaxBits)
}

// BigBits checks the bit width of the wide integer form.
func BigBits(bits int) (int, error) {
	return intInRange("bits", bits, 1, MaxBigBits)
}

// QueryBits checks the bit depth of a string range query, which can address every bit of a full length geohash.
func QueryBits(bits int) (int, error) {
	return intInRange("bits", bits, 1, MaxPrecision*5)
}

func intInRange(parameter string, value int, min int, max int) (int, error) {
	if value < min || value > max {
		return 0, NewRangeError(parameter, float64(value), float64(min), float64(max))
	}
	return value, nil
}

// Geohash checks the length of a geohash string. The characters are checked by the decoder, which reports the first
// invalid one.
func Geohash(hash string) (string, error) {
	if len(hash) < 1 || len(hash) > MaxPrecision {
		return "", NewRangeError("geohash length", float64(len(hash)), 1, MaxPrecision)
	}
	return hash, nil
}

// IntCode checks that the integer geohash fits into the given bit width.
func IntCode(code uint64, bits int) (uint64, error) {
	if bits < 64 && code>>uint(bits) != 0 {
		return 0, NewRangeError("geohash", float64(code), 0, math.Exp2(float64(bits))-1)
	}
	return code, nil
}

// BigCode checks that the wide integer geohash is non-negative and fits into the given bit width.
func BigCode(code *big.Int, bits int) (*big.Int, error) {
	if code == nil {
		return nil, NewTypeError("geohash", "<nil>", "an integer")
	}
	if code.Sign() < 0 || code.BitLen() > bits {
		value, _ := new(big.Float).SetInt(code).Float64()
		return nil, NewRangeError("geohash", value, 0, math.Exp2(float64(bits))-1)
	}
	return code, nil
}

func ParseLatitude(raw string) (float64, error) {
	latitude, err := parseFloat("latitude", raw)
	if err != nil {
		return 0, err
	}
	return Latitude(latitude)
}

func ParseLongitude(raw string) (float64, error) {
	longitude, err := parseFloat("longitude", raw)
	if err != nil {
		return 0, err
	}
	return Longitude(longitude)
}

func ParseBearing(raw string) (float64, error) {
	bearing, err := parseFloat("bearing", raw)
	if err != nil {
		return 0, err
	}
	return Bearing(bearing)
}

func ParseDistance(raw string) (float64, error) {
	distance, err := parseFloat("distance", raw)
	if err != nil {
		return 0, err
	}
	return Distance(distance)
}

// ParseInt parses whole numbers like precisions and bit widths. Range checks are up to the caller.
func ParseInt(parameter string, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, NewTypeError(parameter, raw, "an integer")
	}
	return value, nil
}

func ParseUint(parameter string, raw string) (uint64, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, NewTypeError(parameter, raw, "an unsigned integer")
	}
	return value, nil
}

func ParseBigInt(parameter string, raw string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, NewTypeError(parameter, raw, "an integer")
	}
	return value, nil
}

func parseFloat(parameter string, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, NewTypeError(parameter, raw, "a number")
	}
	return value, nil
}
