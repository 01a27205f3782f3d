package geohash

import (
	"geokit/validate"
	"strings"
)

// Representation names one of the three forms of a geohash.
type Representation string

const (
	StringRepresentation Representation = "string"
	IntRepresentation    Representation = "int"
	BigRepresentation    Representation = "big"
)

func ParseRepresentation(s string) (Representation, error) {
	switch r := Representation(strings.ToLower(strings.TrimSpace(s))); r {
	case StringRepresentation, IntRepresentation, BigRepresentation:
		return r, nil
	case "":
		return StringRepresentation, nil
	}
	return "", validate.NewTypeError("representation", s, "one of string, int, big")
}

// DecodeBoundingBox decodes the textual form of a geohash in this representation. Integer codes are given in decimal
// and the bits are ignored for strings.
func (r Representation) DecodeBoundingBox(raw string, bits int) (BoundingBox, error) {
	switch r {
	case IntRepresentation:
		code, err := validate.ParseUint("geohash", raw)
		if err != nil {
			return BoundingBox{}, err
		}
		return DecodeBoundingBoxInt(code, bits)
	case BigRepresentation:
		code, err := validate.ParseBigInt("geohash", raw)
		if err != nil {
			return BoundingBox{}, err
		}
		return DecodeBoundingBoxBig(code, bits)
	}
	return DecodeBoundingBox(raw)
}
