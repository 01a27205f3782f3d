package validate

import (
	"fmt"
	"geokit/util"
	"math"
	"math/big"
	"strings"
	"testing"
)

func TestValidate_latitude(t *testing.T) {
	for _, latitude := range []float64{-90, -45.5, 0, 89.999, 90} {
		value, err := Latitude(latitude)
		util.AssertNil(t, err)
		util.AssertEqual(t, latitude, value)
	}

	for _, latitude := range []float64{-90.0001, 90.0001, 180, math.NaN(), math.Inf(1)} {
		_, err := Latitude(latitude)
		util.AssertTrue(t, IsRangeError(err))
	}
}

func TestValidate_longitude(t *testing.T) {
	for _, longitude := range []float64{-180, 0, 179.5, 180} {
		value, err := Longitude(longitude)
		util.AssertNil(t, err)
		util.AssertEqual(t, longitude, value)
	}

	for _, longitude := range []float64{-180.0001, 180.0001, math.NaN(), math.Inf(-1)} {
		_, err := Longitude(longitude)
		util.AssertTrue(t, IsRangeError(err))
	}
}

func TestValidate_bearingIsNormalized(t *testing.T) {
	value, err := Bearing(370)
	util.AssertNil(t, err)
	util.AssertApprox(t, 10.0, value, 1e-9)

	value, err = Bearing(-90)
	util.AssertNil(t, err)
	util.AssertApprox(t, 270.0, value, 1e-9)

	value, err = Bearing(360)
	util.AssertNil(t, err)
	util.AssertEqual(t, 0.0, value)

	_, err = Bearing(math.NaN())
	util.AssertTrue(t, IsRangeError(err))
}

func TestValidate_distance(t *testing.T) {
	value, err := Distance(0)
	util.AssertNil(t, err)
	util.AssertEqual(t, 0.0, value)

	_, err = Distance(-1)
	util.AssertTrue(t, IsRangeError(err))

	_, err = Distance(math.Inf(1))
	util.AssertTrue(t, IsRangeError(err))
}

func TestValidate_precisionAndBits(t *testing.T) {
	_, err := Precision(1)
	util.AssertNil(t, err)
	_, err = Precision(22)
	util.AssertNil(t, err)
	_, err = Precision(0)
	util.AssertTrue(t, IsRangeError(err))
	_, err = Precision(23)
	util.AssertTrue(t, IsRangeError(err))

	_, err = Bits(52)
	util.AssertNil(t, err)
	_, err = Bits(53)
	util.AssertTrue(t, IsRangeError(err))

	_, err = BigBits(110)
	util.AssertNil(t, err)
	_, err = BigBits(111)
	util.AssertTrue(t, IsRangeError(err))

	_, err = QueryBits(0)
	util.AssertTrue(t, IsRangeError(err))
}

func TestValidate_rangeErrorMessage(t *testing.T) {
	// Act
	_, err := Latitude(91)

	// Assert
	util.AssertError(t, "Range error: Expected latitude to be within [-90, 90] but found 91.", err)

	rangeError := err.(*RangeError)
	util.AssertEqual(t, "latitude", rangeError.Parameter)
	util.AssertEqual(t, 91.0, rangeError.Value)
}

func TestValidate_errorFormatPrintsStackOnlyWithPlusFlag(t *testing.T) {
	// Arrange
	_, err := Precision(0)

	// Act
	short := fmt.Sprintf("%v", err)
	long := fmt.Sprintf("%+v", err)

	// Assert
	util.AssertEqual(t, err.Error(), short)
	util.AssertTrue(t, strings.HasPrefix(long, err.Error()+"\n"))
	util.AssertTrue(t, strings.Contains(long, "geokit/validate"))
}

func TestValidate_geohashLength(t *testing.T) {
	_, err := Geohash("")
	util.AssertTrue(t, IsRangeError(err))

	_, err = Geohash(strings.Repeat("0", 23))
	util.AssertTrue(t, IsRangeError(err))

	hash, err := Geohash("u1x0")
	util.AssertNil(t, err)
	util.AssertEqual(t, "u1x0", hash)
}

func TestValidate_intCode(t *testing.T) {
	_, err := IntCode(31, 5)
	util.AssertNil(t, err)

	_, err = IntCode(32, 5)
	util.AssertTrue(t, IsRangeError(err))

	_, err = IntCode(0, 1)
	util.AssertNil(t, err)
}

func TestValidate_bigCode(t *testing.T) {
	maxCode := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 110), big.NewInt(1))
	_, err := BigCode(maxCode, 110)
	util.AssertNil(t, err)

	_, err = BigCode(new(big.Int).Lsh(big.NewInt(1), 110), 110)
	util.AssertTrue(t, IsRangeError(err))

	_, err = BigCode(big.NewInt(-1), 64)
	util.AssertTrue(t, IsRangeError(err))

	_, err = BigCode(nil, 64)
	util.AssertTrue(t, IsTypeError(err))
}

func TestValidate_parse(t *testing.T) {
	latitude, err := ParseLatitude(" 53.5 ")
	util.AssertNil(t, err)
	util.AssertEqual(t, 53.5, latitude)

	_, err = ParseLatitude("north")
	util.AssertTrue(t, IsTypeError(err))
	util.AssertError(t, "Type error: Expected latitude to be a number but found 'north'.", err)

	_, err = ParseLongitude("200")
	util.AssertTrue(t, IsRangeError(err))

	bearing, err := ParseBearing("-45")
	util.AssertNil(t, err)
	util.AssertApprox(t, 315.0, bearing, 1e-9)

	_, err = ParseDistance("far")
	util.AssertTrue(t, IsTypeError(err))

	precision, err := ParseInt("precision", "7")
	util.AssertNil(t, err)
	util.AssertEqual(t, 7, precision)

	_, err = ParseUint("geohash", "-3")
	util.AssertTrue(t, IsTypeError(err))

	code, err := ParseBigInt("geohash", "1298074214633706907132624082305023")
	util.AssertNil(t, err)
	util.AssertEqual(t, "1298074214633706907132624082305023", code.String())
}

func TestValidate_syntaxError(t *testing.T) {
	// Act
	err := NewSyntaxError("u1a0", 2)

	// Assert
	util.AssertTrue(t, IsSyntaxError(err))
	util.AssertTrue(t, IsValidationError(err))
	util.AssertEqual(t, 2, err.Position)
	util.AssertEqual(t, "a", err.Character)
	util.AssertError(t, "Syntax error: Invalid character 'a' at position 2 in geohash 'u1a0'.", err)
}
