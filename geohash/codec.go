package geohash

import (
	"geokit/validate"
	"math/big"
)

// Codec converts between coordinates and one geohash representation at a fixed precision. Cell geometry like neighbors
// and cell enumeration is written once against this interface and works for all representations.
type Codec[T any] interface {
	// Encode expects a validated coordinate.
	Encode(c Coordinate) T

	// Decode validates the code and returns the cell it describes.
	Decode(code T) (BoundingBox, error)
}

// StringCodec encodes into base-32 strings of Precision characters. Decoding accepts any valid length.
type StringCodec struct {
	Precision int
}

func NewStringCodec(precision int) (StringCodec, error) {
	precision, err := validate.Precision(precision)
	if err != nil {
		return StringCodec{}, err
	}
	return StringCodec{Precision: precision}, nil
}

func (s StringCodec) Encode(c Coordinate) string {
	return encodeString(c, s.Precision)
}

func (s StringCodec) Decode(hash string) (BoundingBox, error) {
	hash, err := validate.Geohash(hash)
	if err != nil {
		return BoundingBox{}, err
	}

	box, invalidIndex := decodeString(hash)
	if invalidIndex >= 0 {
		return BoundingBox{}, validate.NewSyntaxError(hash, invalidIndex)
	}

	return box, nil
}

// IntCodec encodes into the lowest Bits bits of an uint64.
type IntCodec struct {
	Bits int
}

func NewIntCodec(bits int) (IntCodec, error) {
	bits, err := validate.Bits(bits)
	if err != nil {
		return IntCodec{}, err
	}
	return IntCodec{Bits: bits}, nil
}

func (i IntCodec) Encode(c Coordinate) uint64 {
	return encodeInt(c, i.Bits)
}

func (i IntCodec) Decode(code uint64) (BoundingBox, error) {
	code, err := validate.IntCode(code, i.Bits)
	if err != nil {
		return BoundingBox{}, err
	}
	return decodeInt(code, i.Bits), nil
}

// BigCodec encodes into the lowest Bits bits of a big integer, which allows the full 110 bit depth of a 22 character
// string geohash.
type BigCodec struct {
	Bits int
}

func NewBigCodec(bits int) (BigCodec, error) {
	bits, err := validate.BigBits(bits)
	if err != nil {
		return BigCodec{}, err
	}
	return BigCodec{Bits: bits}, nil
}

func (b BigCodec) Encode(c Coordinate) *big.Int {
	return encodeBig(c, b.Bits)
}

func (b BigCodec) Decode(code *big.Int) (BoundingBox, error) {
	code, err := validate.BigCode(code, b.Bits)
	if err != nil {
		return BoundingBox{}, err
	}
	return decodeBig(code, b.Bits), nil
}

// decodeWith is the shared implementation of the exported DecodeXyz functions.
func decodeWith[T any](codec Codec[T], code T) (Coordinate, error) {
	box, err := codec.Decode(code)
	if err != nil {
		return Coordinate{}, err
	}
	return box.Center(), nil
}

func decodeWithErrorWith[T any](codec Codec[T], code T) (Decoded, error) {
	box, err := codec.Decode(code)
	if err != nil {
		return Decoded{}, err
	}
	return box.Decoded(), nil
}
