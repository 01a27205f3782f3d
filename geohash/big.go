package geohash

import "math/big"

// EncodeBig returns the geohash of the given coordinate as big integer of the given bit width.
func EncodeBig(latitude float64, longitude float64, bits int) (*big.Int, error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return nil, err
	}
	c, err := NewCoordinate(latitude, longitude)
	if err != nil {
		return nil, err
	}
	return codec.Encode(c), nil
}

func DecodeBoundingBoxBig(code *big.Int, bits int) (BoundingBox, error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return BoundingBox{}, err
	}
	return codec.Decode(code)
}

func DecodeBig(code *big.Int, bits int) (Coordinate, error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return Coordinate{}, err
	}
	return decodeWith[*big.Int](codec, code)
}

func DecodeBigWithError(code *big.Int, bits int) (Decoded, error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return Decoded{}, err
	}
	return decodeWithErrorWith[*big.Int](codec, code)
}
