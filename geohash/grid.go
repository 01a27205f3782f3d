package geohash

import (
	"geokit/util"
	"geokit/validate"
	"github.com/hauke96/sigolo/v2"
	"math"
	"math/big"
	"math/bits"
)

// preallocatedCells caps the capacity reserved up front when collecting cells.
const preallocatedCells = 1 << 16

// CellIterator lazily enumerates the cells between a south-west and a north-east corner cell. Cells are produced row
// by row starting in the south-west, each row from west to east. Only the current position is stored, so abandoning
// the iterator early costs nothing.
type CellIterator[T any] struct {
	codec  Codec[T]
	origin Coordinate // Center of the south-west corner cell
	margin Coordinate // Error margin of the corner cells

	latCells int // Number of cells from the south-west to the north-east corner, i.e. rows-1
	lonCells int // Number of cells from the south-west to the north-east corner, i.e. columns-1

	lat int // Row of the next cell
	lon int // Column of the next cell
}

func newCellIterator[T any](codec Codec[T], minLat float64, minLon float64, maxLat float64, maxLon float64) (*CellIterator[T], error) {
	southWest, err := NewCoordinate(minLat, minLon)
	if err != nil {
		return nil, err
	}
	northEast, err := NewCoordinate(maxLat, maxLon)
	if err != nil {
		return nil, err
	}

	southWestBox := decodeOwnCode(codec, codec.Encode(southWest))
	northEastBox := decodeOwnCode(codec, codec.Encode(northEast))

	origin := southWestBox.Center()
	margin := southWestBox.ErrorMargin()

	latSteps := math.Round((northEastBox.Center().Latitude - origin.Latitude) / (2 * margin.Latitude))
	lonSteps := math.Round((northEastBox.Center().Longitude - origin.Longitude) / (2 * margin.Longitude))

	iterator := &CellIterator[T]{
		codec:    codec,
		origin:   origin,
		margin:   margin,
		latCells: -1,
		lonCells: -1,
	}

	if isFinite(latSteps) && isFinite(lonSteps) && latSteps >= 0 && lonSteps >= 0 {
		iterator.latCells = int(latSteps)
		iterator.lonCells = int(lonSteps)
	} else {
		sigolo.Debugf("No cells between corner cells %s and %s", southWestBox.String(), northEastBox.String())
	}

	return iterator, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// decodeOwnCode decodes a code this package just encoded, which can't fail.
func decodeOwnCode[T any](codec Codec[T], code T) BoundingBox {
	box, err := codec.Decode(code)
	if err != nil {
		util.LogFatalBug("Unable to decode the freshly encoded code %v: %+v", code, err)
	}
	return box
}

func (it *CellIterator[T]) HasNext() bool {
	return it.lonCells >= 0 && it.lat <= it.latCells
}

// Next returns the next cell. The boolean is false when the iterator is exhausted.
func (it *CellIterator[T]) Next() (T, bool) {
	if !it.HasNext() {
		var zero T
		return zero, false
	}

	code := it.codec.Encode(shiftCoordinate(it.origin, it.margin, float64(it.lat), float64(it.lon)))

	it.lon++
	if it.lon > it.lonCells {
		it.lon = 0
		it.lat++
	}

	return code, true
}

// Reset restarts the enumeration at the south-west corner.
func (it *CellIterator[T]) Reset() {
	it.lat = 0
	it.lon = 0
}

// Len returns the total number of cells of the enumeration, independent of the current position. Counts that don't
// fit into an int are reported as math.MaxInt.
func (it *CellIterator[T]) Len() int {
	if it.lonCells < 0 || it.latCells < 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(it.latCells)+1, uint64(it.lonCells)+1)
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

// approxLen is the number of cells as float, which also covers enumerations too large for Len.
func (it *CellIterator[T]) approxLen() float64 {
	if it.lonCells < 0 || it.latCells < 0 {
		return 0
	}
	return (float64(it.latCells) + 1) * (float64(it.lonCells) + 1)
}

// Collect returns all remaining cells.
func (it *CellIterator[T]) Collect() []T {
	cells := make([]T, 0, min(it.Len(), preallocatedCells))
	for it.HasNext() {
		cell, _ := it.Next()
		cells = append(cells, cell)
	}
	return cells
}

// BoundingBoxesIterator lazily enumerates all geohashes with the given precision covering the given area.
func BoundingBoxesIterator(minLat float64, minLon float64, maxLat float64, maxLon float64, precision int) (*CellIterator[string], error) {
	codec, err := NewStringCodec(precision)
	if err != nil {
		return nil, err
	}
	return newCellIterator[string](codec, minLat, minLon, maxLat, maxLon)
}

// BoundingBoxes returns all geohashes with the given precision covering the given area. The area is empty when
// the minimum exceeds the maximum on any axis.
func BoundingBoxes(minLat float64, minLon float64, maxLat float64, maxLon float64, precision int) ([]string, error) {
	iterator, err := BoundingBoxesIterator(minLat, minLon, maxLat, maxLon, precision)
	if err != nil {
		return nil, err
	}
	return iterator.Collect(), nil
}

func BoundingBoxesIntIterator(minLat float64, minLon float64, maxLat float64, maxLon float64, bits int) (*CellIterator[uint64], error) {
	codec, err := NewIntCodec(bits)
	if err != nil {
		return nil, err
	}
	return newCellIterator[uint64](codec, minLat, minLon, maxLat, maxLon)
}

func BoundingBoxesInt(minLat float64, minLon float64, maxLat float64, maxLon float64, bits int) ([]uint64, error) {
	iterator, err := BoundingBoxesIntIterator(minLat, minLon, maxLat, maxLon, bits)
	if err != nil {
		return nil, err
	}
	return iterator.Collect(), nil
}

func BoundingBoxesBigIterator(minLat float64, minLon float64, maxLat float64, maxLon float64, bits int) (*CellIterator[*big.Int], error) {
	codec, err := NewBigCodec(bits)
	if err != nil {
		return nil, err
	}
	return newCellIterator[*big.Int](codec, minLat, minLon, maxLat, maxLon)
}

func BoundingBoxesBig(minLat float64, minLon float64, maxLat float64, maxLon float64, bits int) ([]*big.Int, error) {
	iterator, err := BoundingBoxesBigIterator(minLat, minLon, maxLat, maxLon, bits)
	if err != nil {
		return nil, err
	}
	return iterator.Collect(), nil
}

// CellCount returns the number of cells BoundingBoxes would produce without encoding them. A range error is returned
// when the number doesn't fit into an int.
func CellCount(minLat float64, minLon float64, maxLat float64, maxLon float64, precision int) (int, error) {
	iterator, err := BoundingBoxesIterator(minLat, minLon, maxLat, maxLon, precision)
	if err != nil {
		return 0, err
	}
	if iterator.Len() == math.MaxInt {
		return 0, validate.NewRangeError("number of cells", iterator.approxLen(), 0, math.MaxInt)
	}
	return iterator.Len(), nil
}
