package geohash

import "math/big"

// bisector holds the state of one bisection walk over the whole earth. Even steps halve the longitude interval, odd
// steps the latitude interval. Encoding and decoding use the same walk, which keeps both directions bit-exact.
type bisector struct {
	box    BoundingBox
	isEven bool
}

func newBisector() *bisector {
	return &bisector{
		box:    WorldBoundingBox,
		isEven: true,
	}
}

// encodeBit narrows the active interval to the half containing the coordinate and returns the emitted bit. A value
// exactly on the midpoint belongs to the lower half.
func (b *bisector) encodeBit(c Coordinate) bool {
	var bit bool
	if b.isEven {
		bit = c.Longitude > (b.box.MinLon+b.box.MaxLon)/2
	} else {
		bit = c.Latitude > (b.box.MinLat+b.box.MaxLat)/2
	}
	b.decodeBit(bit)
	return bit
}

// decodeBit narrows the active interval to the half selected by the bit.
func (b *bisector) decodeBit(bit bool) {
	if b.isEven {
		mid := (b.box.MinLon + b.box.MaxLon) / 2
		if bit {
			b.box.MinLon = mid
		} else {
			b.box.MaxLon = mid
		}
	} else {
		mid := (b.box.MinLat + b.box.MaxLat) / 2
		if bit {
			b.box.MinLat = mid
		} else {
			b.box.MaxLat = mid
		}
	}
	b.isEven = !b.isEven
}

func encodeString(c Coordinate, precision int) string {
	b := newBisector()
	hash := make([]byte, precision)

	for i := range hash {
		var index byte
		for j := 0; j < BitsPerChar; j++ {
			index <<= 1
			if b.encodeBit(c) {
				index |= 1
			}
		}
		hash[i] = Alphabet[index]
	}

	return string(hash)
}

func encodeInt(c Coordinate, bits int) uint64 {
	b := newBisector()
	var code uint64

	for i := 0; i < bits; i++ {
		code <<= 1
		if b.encodeBit(c) {
			code |= 1
		}
	}

	return code
}

func encodeBig(c Coordinate, bits int) *big.Int {
	b := newBisector()
	code := new(big.Int)

	for i := 0; i < bits; i++ {
		code.Lsh(code, 1)
		if b.encodeBit(c) {
			code.SetBit(code, 0, 1)
		}
	}

	return code
}

// decodeString expands every character into 5 bits, most significant first. It stops at the first character outside
// the alphabet and returns its index.
func decodeString(hash string) (BoundingBox, int) {
	b := newBisector()

	for i := 0; i < len(hash); i++ {
		index := alphabetIndex[hash[i]]
		if index < 0 {
			return BoundingBox{}, i
		}
		for j := BitsPerChar - 1; j >= 0; j-- {
			b.decodeBit(index>>j&1 == 1)
		}
	}

	return b.box, -1
}

func decodeInt(code uint64, bits int) BoundingBox {
	b := newBisector()
	for i := bits - 1; i >= 0; i-- {
		b.decodeBit(code>>uint(i)&1 == 1)
	}
	return b.box
}

func decodeBig(code *big.Int, bits int) BoundingBox {
	b := newBisector()
	for i := bits - 1; i >= 0; i-- {
		b.decodeBit(code.Bit(i) == 1)
	}
	return b.box
}
