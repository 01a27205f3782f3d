package geohash

import (
	"geokit/util"
	"geokit/validate"
	reference "github.com/mmcloughlin/geohash"
	"github.com/pkg/errors"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	// Act
	hash, err := Encode(64.0123456789, 64.0123456789, 10)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, "v7ms0th6gy", hash)
}

func TestEncode_decodeWithinErrorMargin(t *testing.T) {
	// Arrange
	hash, err := Encode(64.0123456789, 64.0123456789, 10)
	util.AssertNil(t, err)

	// Act
	decoded, err := DecodeWithError(hash)

	// Assert
	util.AssertNil(t, err)
	util.AssertApprox(t, 64.0123456789, decoded.Latitude, 0.00003)
	util.AssertApprox(t, 64.0123456789, decoded.Longitude, 0.00003)
	util.AssertTrue(t, math.Abs(decoded.Latitude-64.0123456789) <= decoded.Error.Latitude)
	util.AssertTrue(t, math.Abs(decoded.Longitude-64.0123456789) <= decoded.Error.Longitude)
}

func TestEncode_fullPrecisionRoundTrip(t *testing.T) {
	// Arrange
	hash, err := Encode(64.0123456789, 64.0123456789, validate.MaxPrecision)
	util.AssertNil(t, err)

	// Act
	coordinate, err := Decode(hash)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 64.0123456789, coordinate.Latitude)
	util.AssertEqual(t, 64.0123456789, coordinate.Longitude)
}

func TestEncode_midpointBelongsToLowerHalf(t *testing.T) {
	hash, err := Encode(0, 0, 9)
	util.AssertNil(t, err)
	util.AssertEqual(t, "7zzzzzzzz", hash)

	box, err := DecodeBoundingBox("7")
	util.AssertNil(t, err)
	util.AssertEqual(t, BoundingBox{MinLat: -45, MinLon: -45, MaxLat: 0, MaxLon: 0}, box)
	util.AssertEqual(t, [4]float64{-45, -45, 0, 0}, box.Array())
}

func TestEncode_corners(t *testing.T) {
	hash, err := Encode(90, 180, 4)
	util.AssertNil(t, err)
	util.AssertEqual(t, "zzzz", hash)

	hash, err = Encode(-90, -180, 4)
	util.AssertNil(t, err)
	util.AssertEqual(t, "0000", hash)
}

func TestEncode_invalidInput(t *testing.T) {
	_, err := Encode(90.1, 0, 9)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = Encode(0, math.NaN(), 9)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = Encode(0, 0, 0)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = Encode(0, 0, 23)
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestEncode_sameAsReferenceImplementation(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		// Arrange
		lat := random.Float64()*180 - 90
		lon := random.Float64()*360 - 180

		// Act
		hash, err := Encode(lat, lon, 9)
		util.AssertNil(t, err)
		code, err := EncodeInt(lat, lon, 40)
		util.AssertNil(t, err)

		// Assert
		util.AssertEqual(t, reference.EncodeWithPrecision(lat, lon, 9), hash)
		util.AssertEqual(t, reference.EncodeIntWithPrecision(lat, lon, 40), code)

		box, err := DecodeBoundingBox(hash)
		util.AssertNil(t, err)
		referenceBox := reference.BoundingBox(hash)
		util.AssertApprox(t, referenceBox.MinLat, box.MinLat, 1e-12)
		util.AssertApprox(t, referenceBox.MinLng, box.MinLon, 1e-12)
		util.AssertApprox(t, referenceBox.MaxLat, box.MaxLat, 1e-12)
		util.AssertApprox(t, referenceBox.MaxLng, box.MaxLon, 1e-12)
	}
}

func TestEncode_prefixOfLongerHash(t *testing.T) {
	long, err := Encode(53.5511, 9.9937, 12)
	util.AssertNil(t, err)
	util.AssertEqual(t, "u1x0ektjy0df", long)

	for precision := 1; precision < 12; precision++ {
		hash, err := Encode(53.5511, 9.9937, precision)
		util.AssertNil(t, err)
		util.AssertEqual(t, long[:precision], hash)
	}
}

func TestDecodeBoundingBox_areaHalvesWithEveryBit(t *testing.T) {
	worldArea := 180.0 * 360.0

	for precision := 1; precision <= validate.MaxPrecision; precision++ {
		// Arrange
		hash, err := Encode(-33.8688, 151.2093, precision)
		util.AssertNil(t, err)

		// Act
		box, err := DecodeBoundingBox(hash)

		// Assert
		util.AssertNil(t, err)
		area := (box.MaxLat - box.MinLat) * (box.MaxLon - box.MinLon)
		util.AssertEqual(t, worldArea/math.Exp2(float64(precision*BitsPerChar)), area)
		util.AssertTrue(t, box.Contains(Coordinate{Latitude: -33.8688, Longitude: 151.2093}))
	}
}

func TestDecodeBoundingBox_cellsAreNested(t *testing.T) {
	hash, err := Encode(-33.8688, 151.2093, validate.MaxPrecision)
	util.AssertNil(t, err)

	previous := WorldBoundingBox
	for precision := 1; precision <= validate.MaxPrecision; precision++ {
		box, err := DecodeBoundingBox(hash[:precision])
		util.AssertNil(t, err)

		util.AssertTrue(t, box.MinLat >= previous.MinLat && box.MaxLat <= previous.MaxLat)
		util.AssertTrue(t, box.MinLon >= previous.MinLon && box.MaxLon <= previous.MaxLon)
		previous = box
	}
}

func TestDecodeBoundingBox_invalidCharacter(t *testing.T) {
	// Act
	_, err := DecodeBoundingBox("v7mab")

	// Assert
	util.AssertTrue(t, validate.IsSyntaxError(err))
	util.AssertError(t, "Syntax error: Invalid character 'a' at position 3 in geohash 'v7mab'.", err)

	var syntaxError *validate.SyntaxError
	util.AssertTrue(t, errors.As(err, &syntaxError))
	util.AssertEqual(t, 3, syntaxError.Position)
	util.AssertEqual(t, "a", syntaxError.Character)
}

func TestDecodeBoundingBox_firstInvalidCharacterIsReported(t *testing.T) {
	for _, c := range []string{"a", "i", "l", "o", "A", "Z", " ", "~"} {
		_, err := DecodeBoundingBox("u1" + c + "i")

		var syntaxError *validate.SyntaxError
		util.AssertTrue(t, errors.As(err, &syntaxError))
		util.AssertEqual(t, 2, syntaxError.Position)
	}
}

func TestDecodeBoundingBox_allAlphabetCharactersAreValid(t *testing.T) {
	for i := 0; i < len(Alphabet); i++ {
		_, err := DecodeBoundingBox(Alphabet[i : i+1])
		util.AssertNil(t, err)
	}
}

func TestDecodeBoundingBox_invalidLength(t *testing.T) {
	_, err := DecodeBoundingBox("")
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = DecodeBoundingBox(strings.Repeat("u", 23))
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestEncodeAuto(t *testing.T) {
	expectations := map[[2]string]string{
		{"53.55", "9.99"}:               "u1x0ek6",
		{"53", "9"}:                     "u1qmsb3e7",
		{"53.5511", "9.9937"}:           "u1x0ektjy0d",
		{"53.5511", "9.99"}:             "u1x0ekdmzbe",
		{"-53.5511000000001", "9.9937"}: "hnrp77m4np6vd77dzt",
	}

	for input, expected := range expectations {
		// Act
		hash, err := EncodeAuto(input[0], input[1])

		// Assert
		util.AssertNil(t, err)
		util.AssertEqual(t, expected, hash)
	}
}

func TestEncodeAuto_invalidInput(t *testing.T) {
	_, err := EncodeAuto("north", "9.99")
	util.AssertTrue(t, validate.IsTypeError(err))

	_, err = EncodeAuto("53.55", "190")
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestEncodeInt(t *testing.T) {
	code, err := EncodeInt(0, 0, 52)
	util.AssertNil(t, err)
	util.AssertEqual(t, uint64(1125899906842623), code)

	code, err = EncodeInt(0, 0, 5)
	util.AssertNil(t, err)
	util.AssertEqual(t, uint64(7), code)

	code, err = EncodeInt(53.5511, 9.9937, DefaultBits)
	util.AssertNil(t, err)
	util.AssertEqual(t, uint64(3667560297078529), code)
}

func TestEncodeInt_sameBitsAsString(t *testing.T) {
	// Arrange
	hash, err := Encode(53.5511, 9.9937, 10)
	util.AssertNil(t, err)
	code, err := EncodeInt(53.5511, 9.9937, 50)
	util.AssertNil(t, err)

	// Act
	hashBox, err := DecodeBoundingBox(hash)
	util.AssertNil(t, err)
	codeBox, err := DecodeBoundingBoxInt(code, 50)
	util.AssertNil(t, err)

	// Assert
	util.AssertEqual(t, hashBox, codeBox)
}

func TestDecodeInt(t *testing.T) {
	// Act
	decoded, err := DecodeIntWithError(3667560297078529, 52)

	// Assert
	util.AssertNil(t, err)
	util.AssertApprox(t, 53.5511, decoded.Latitude, decoded.Error.Latitude)
	util.AssertApprox(t, 9.9937, decoded.Longitude, decoded.Error.Longitude)

	coordinate, err := DecodeInt(3667560297078529, 52)
	util.AssertNil(t, err)
	util.AssertEqual(t, decoded.Coordinate, coordinate)
}

func TestDecodeInt_codeTooLarge(t *testing.T) {
	_, err := DecodeBoundingBoxInt(32, 5)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = DecodeBoundingBoxInt(31, 5)
	util.AssertNil(t, err)

	_, err = DecodeBoundingBoxInt(1, 53)
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestEncodeBig(t *testing.T) {
	// Act
	code, err := EncodeBig(64.0123456789, 64.0123456789, validate.MaxBigBits)

	// Assert
	util.AssertNil(t, err)
	expected, _ := new(big.Int).SetString("1104906081738896117776798162853502", 10)
	util.AssertEqual(t, 0, expected.Cmp(code))
}

func TestEncodeBig_sameBitsAsOtherRepresentations(t *testing.T) {
	// Arrange
	bigCode, err := EncodeBig(-33.8688, 151.2093, 52)
	util.AssertNil(t, err)
	intCode, err := EncodeInt(-33.8688, 151.2093, 52)
	util.AssertNil(t, err)
	util.AssertTrue(t, bigCode.IsUint64())
	util.AssertEqual(t, intCode, bigCode.Uint64())

	fullCode, err := EncodeBig(-33.8688, 151.2093, validate.MaxBigBits)
	util.AssertNil(t, err)
	hash, err := Encode(-33.8688, 151.2093, validate.MaxPrecision)
	util.AssertNil(t, err)

	// Act
	bigBox, err := DecodeBoundingBoxBig(fullCode, validate.MaxBigBits)
	util.AssertNil(t, err)
	hashBox, err := DecodeBoundingBox(hash)
	util.AssertNil(t, err)

	// Assert
	util.AssertEqual(t, hashBox, bigBox)
}

func TestDecodeBig(t *testing.T) {
	// Arrange
	code, err := EncodeBig(53.5511, 9.9937, DefaultBigBits)
	util.AssertNil(t, err)

	// Act
	decoded, err := DecodeBigWithError(code, DefaultBigBits)

	// Assert
	util.AssertNil(t, err)
	util.AssertTrue(t, math.Abs(decoded.Latitude-53.5511) <= decoded.Error.Latitude)
	util.AssertTrue(t, math.Abs(decoded.Longitude-9.9937) <= decoded.Error.Longitude)

	coordinate, err := DecodeBig(code, DefaultBigBits)
	util.AssertNil(t, err)
	util.AssertEqual(t, decoded.Coordinate, coordinate)
}

func TestDecodeBig_invalidCode(t *testing.T) {
	_, err := DecodeBoundingBoxBig(big.NewInt(-1), 10)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = DecodeBoundingBoxBig(big.NewInt(1024), 10)
	util.AssertTrue(t, validate.IsRangeError(err))

	_, err = DecodeBoundingBoxBig(nil, 10)
	util.AssertTrue(t, validate.IsTypeError(err))

	_, err = DecodeBoundingBoxBig(big.NewInt(1), 111)
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestCodec_encodingIsMonotonicInPrecision(t *testing.T) {
	c := Coordinate{Latitude: 47.3769, Longitude: 8.5417}

	for bits := 1; bits < validate.MaxBits; bits++ {
		shorter := IntCodec{Bits: bits}.Encode(c)
		longer := IntCodec{Bits: bits + 1}.Encode(c)
		util.AssertEqual(t, shorter, longer>>1)
	}
}
