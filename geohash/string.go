package geohash

import (
	"geokit/validate"
	"strings"
)

// autoPrecision maps the number of decimal places of a textual coordinate to the geohash length that preserves them.
var autoPrecision = [...]int{0, 5, 7, 8, 11, 12, 13, 15, 16, 17, 18}

// Encode returns the geohash string of the given coordinate with precision characters.
func Encode(latitude float64, longitude float64, precision int) (string, error) {
	codec, err := NewStringCodec(precision)
	if err != nil {
		return "", err
	}
	c, err := NewCoordinate(latitude, longitude)
	if err != nil {
		return "", err
	}
	return codec.Encode(c), nil
}

// EncodeAuto determines the precision from the decimal places written in the textual coordinate: "53.55" and "9.99"
// result in a hash of 7 characters. Coordinates without decimal places use DefaultPrecision.
func EncodeAuto(latitude string, longitude string) (string, error) {
	lat, err := validate.ParseLatitude(latitude)
	if err != nil {
		return "", err
	}
	lon, err := validate.ParseLongitude(longitude)
	if err != nil {
		return "", err
	}

	decimals := max(countDecimals(latitude), countDecimals(longitude))
	precision := autoPrecision[min(decimals, len(autoPrecision)-1)]
	if precision == 0 {
		precision = DefaultPrecision
	}

	return Encode(lat, lon, precision)
}

func countDecimals(number string) int {
	number = strings.TrimSpace(number)

	pointIndex := strings.IndexByte(number, '.')
	if pointIndex < 0 {
		return 0
	}

	decimals := number[pointIndex+1:]
	if exponentIndex := strings.IndexAny(decimals, "eE"); exponentIndex >= 0 {
		decimals = decimals[:exponentIndex]
	}

	return len(decimals)
}

// DecodeBoundingBox returns the cell of the given geohash. Invalid characters result in a SyntaxError for the first
// of them.
func DecodeBoundingBox(hash string) (BoundingBox, error) {
	return StringCodec{}.Decode(hash)
}

// Decode returns the center of the cell of the given geohash.
func Decode(hash string) (Coordinate, error) {
	return decodeWith[string](StringCodec{}, hash)
}

func DecodeWithError(hash string) (Decoded, error) {
	return decodeWithErrorWith[string](StringCodec{}, hash)
}
