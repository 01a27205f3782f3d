package geohash

import (
	"github.com/hauke96/sigolo/v2"
	"math"
	"math/big"
)

// Neighbors maps each of the 8 directions to the adjacent cell in the same representation as the origin cell.
type Neighbors[T any] map[Direction]T

// Neighbor returns the geohash of the adjacent cell with the same length.
func Neighbor(hash string, direction Direction) (string, error) {
	return neighborWith[string](StringCodec{Precision: len(hash)}, hash, direction)
}

func AllNeighbors(hash string) (Neighbors[string], error) {
	return allNeighborsWith[string](StringCodec{Precision: len(hash)}, hash)
}

func NeighborInt(code uint64, bits int, direction Direction) (uint64, error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return 0, err
	}
	return neighborWith[uint64](codec, code, direction)
}

func AllNeighborsInt(code uint64, bits int) (Neighbors[uint64], error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return nil, err
	}
	return allNeighborsWith[uint64](codec, code)
}

func NeighborBig(code *big.Int, bits int, direction Direction) (*big.Int, error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return nil, err
	}
	return neighborWith[*big.Int](codec, code, direction)
}

func AllNeighborsBig(code *big.Int, bits int) (Neighbors[*big.Int], error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return nil, err
	}
	return allNeighborsWith[*big.Int](codec, code)
}

func neighborWith[T any](codec Codec[T], code T, direction Direction) (T, error) {
	var zero T

	o, err := direction.offset()
	if err != nil {
		return zero, err
	}

	box, err := codec.Decode(code)
	if err != nil {
		return zero, err
	}

	return codec.Encode(shiftCoordinate(box.Center(), box.ErrorMargin(), o.lat, o.lon)), nil
}

// allNeighborsWith decodes the cell once and derives all 8 neighbors from its center and error margin.
func allNeighborsWith[T any](codec Codec[T], code T) (Neighbors[T], error) {
	box, err := codec.Decode(code)
	if err != nil {
		return nil, err
	}

	center := box.Center()
	margin := box.ErrorMargin()

	neighbors := make(Neighbors[T], len(Directions))
	for _, direction := range Directions {
		o := directionOffsets[direction]
		neighbors[direction] = codec.Encode(shiftCoordinate(center, margin, o.lat, o.lon))
	}

	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("Neighbors of cell %s: %v", box.String(), neighbors)
	}

	return neighbors, nil
}

// shiftCoordinate moves the center of a cell by the given number of cells along each axis. A cell is twice the error
// margin wide. The result is always a valid coordinate.
func shiftCoordinate(center Coordinate, margin Coordinate, latCells float64, lonCells float64) Coordinate {
	return Coordinate{
		Latitude:  clampLatitude(center.Latitude + latCells*2*margin.Latitude),
		Longitude: wrapLongitude(center.Longitude + lonCells*2*margin.Longitude),
	}
}

// clampLatitude keeps latitudes at the poles instead of wrapping them over the pole. Moving north from the northernmost
// row of cells therefore results in the same row.
func clampLatitude(latitude float64) float64 {
	return math.Max(-90, math.Min(90, latitude))
}

// wrapLongitude brings the longitude into [-180, 180] modulo 360, so moving east of the antimeridian continues in the
// west.
func wrapLongitude(longitude float64) float64 {
	if longitude >= -180 && longitude <= 180 {
		return longitude
	}

	longitude = math.Mod(longitude+180, 360)
	if longitude < 0 {
		longitude += 360
	}

	return longitude - 180
}
