package geohash

// EncodeInt returns the geohash of the given coordinate as integer of the given bit width.
func EncodeInt(latitude float64, longitude float64, bits int) (uint64, error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return 0, err
	}
	c, err := NewCoordinate(latitude, longitude)
	if err != nil {
		return 0, err
	}
	return codec.Encode(c), nil
}

// DecodeBoundingBoxInt returns the cell of the given integer geohash. The code must fit into the bit width.
func DecodeBoundingBoxInt(code uint64, bits int) (BoundingBox, error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return BoundingBox{}, err
	}
	return codec.Decode(code)
}

func DecodeInt(code uint64, bits int) (Coordinate, error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return Coordinate{}, err
	}
	return decodeWith[uint64](codec, code)
}

func DecodeIntWithError(code uint64, bits int) (Decoded, error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return Decoded{}, err
	}
	return decodeWithErrorWith[uint64](codec, code)
}
