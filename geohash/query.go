package geohash

import (
	"geokit/geodesy"
	"geokit/util"
	"geokit/validate"
	"github.com/hauke96/sigolo/v2"
)

// QueryRange is the lexicographic range [Start, End) of all geohashes within a cell. It's meant for range scans over
// an index sorted by geohash.
type QueryRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (q QueryRange) Contains(hash string) bool {
	return q.Start <= hash && hash < q.End
}

// IntRange is the range [Start, End) of all integer geohashes of an index with a fixed bit depth that lie within a
// cell, as used by sorted sets storing geohashes as score.
type IntRange struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

func (r IntRange) Contains(code uint64) bool {
	return r.Start <= code && code < r.End
}

// BoundingBoxQuery returns the range of all geohashes lying in the cell with the given number of bits that contains
// the given geohash. A geohash shorter than the cell results in the range of all hashes starting with it.
func BoundingBoxQuery(hash string, bits int) (QueryRange, error) {
	hash, err := validate.Geohash(hash)
	if err != nil {
		return QueryRange{}, err
	}
	for i := 0; i < len(hash); i++ {
		if alphabetIndex[hash[i]] < 0 {
			return QueryRange{}, validate.NewSyntaxError(hash, i)
		}
	}
	bits, err = validate.QueryBits(bits)
	if err != nil {
		return QueryRange{}, err
	}

	precision := (bits + BitsPerChar - 1) / BitsPerChar
	if len(hash) < precision {
		return QueryRange{Start: hash, End: hash + Limiter}, nil
	}

	// The last character of the cell only partially belongs to it, its lower bits are free
	prefix := hash[:precision-1]
	shift := BitsPerChar - (bits - (precision-1)*BitsPerChar)
	maskedIndex := int(alphabetIndex[hash[precision-1]]) >> shift << shift
	endIndex := maskedIndex + 1<<shift

	query := QueryRange{
		Start: prefix + string(Alphabet[maskedIndex]),
		End:   prefix + Limiter,
	}
	if endIndex < len(Alphabet) {
		query.End = prefix + string(Alphabet[endIndex])
	}

	return query, nil
}

// IntQueryRange returns the range of all codes of an index with depth bits that lie within the cell of the given
// code with fewer bits.
func IntQueryRange(code uint64, bits int, depth int) (IntRange, error) {
	bits, err := validate.Bits(bits)
	if err != nil {
		return IntRange{}, err
	}
	depth, err = validate.Bits(depth)
	if err != nil {
		return IntRange{}, err
	}
	if depth < bits {
		return IntRange{}, validate.NewRangeError("depth", float64(depth), float64(bits), validate.MaxBits)
	}
	code, err = validate.IntCode(code, bits)
	if err != nil {
		return IntRange{}, err
	}

	shift := uint(depth - bits)
	return IntRange{
		Start: code << shift,
		End:   (code + 1) << shift,
	}, nil
}

// BoundingCircleQueries returns the ranges of geohashes covering the circle with the given radius in meters. The cells
// are chosen just large enough, so that the cells of 9 points sampled on the bounding box of the circle cover it.
// Duplicate ranges are dropped, the order is the order of the first occurrence.
func BoundingCircleQueries(latitude float64, longitude float64, radius float64) ([]QueryRange, error) {
	samples, bits, err := circleSamples(latitude, longitude, radius, validate.MaxPrecision*BitsPerChar)
	if err != nil {
		return nil, err
	}

	codec := StringCodec{Precision: (bits + BitsPerChar - 1) / BitsPerChar}

	var queries []QueryRange
	seen := map[QueryRange]bool{}
	for _, sample := range samples {
		query, err := BoundingBoxQuery(codec.Encode(sample), bits)
		if err != nil {
			util.LogFatalBug("Unable to create query for sample %v with %d bits: %+v", sample, bits, err)
		}

		if !seen[query] {
			seen[query] = true
			queries = append(queries, query)
		}
	}

	sigolo.Debugf("Created %d queries with %d bits for circle around (%f, %f) with radius %fm", len(queries), bits, latitude, longitude, radius)
	return queries, nil
}

// BoundingCircleIntQueries is the integer variant of BoundingCircleQueries for an index storing codes with the maximum
// of 52 bits.
func BoundingCircleIntQueries(latitude float64, longitude float64, radius float64) ([]IntRange, error) {
	samples, bits, err := circleSamples(latitude, longitude, radius, validate.MaxBits)
	if err != nil {
		return nil, err
	}

	codec := IntCodec{Bits: bits}

	var ranges []IntRange
	seen := map[IntRange]bool{}
	for _, sample := range samples {
		r, err := IntQueryRange(codec.Encode(sample), bits, validate.MaxBits)
		if err != nil {
			util.LogFatalBug("Unable to create range for sample %v with %d bits: %+v", sample, bits, err)
		}

		if !seen[r] {
			seen[r] = true
			ranges = append(ranges, r)
		}
	}

	sigolo.Debugf("Created %d ranges with %d bits for circle around (%f, %f) with radius %fm", len(ranges), bits, latitude, longitude, radius)
	return ranges, nil
}

// circleSamples returns the center of the circle, the midpoints of the edges of its bounding box and the corners of
// its bounding box together with the number of bits needed for cells covering the circle.
func circleSamples(latitude float64, longitude float64, radius float64, ceiling int) ([]Coordinate, int, error) {
	center, err := NewCoordinate(latitude, longitude)
	if err != nil {
		return nil, 0, err
	}
	bound, err := geodesy.BoundingBoxAround(latitude, longitude, radius)
	if err != nil {
		return nil, 0, err
	}
	bits, err := geodesy.BoundingBoxBits(latitude, radius, ceiling)
	if err != nil {
		return nil, 0, err
	}

	box := BoundingBoxFromBound(bound)
	samples := []Coordinate{
		center,
		{Latitude: box.MaxLat, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: box.MaxLon},
		{Latitude: box.MinLat, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: box.MinLon},
		{Latitude: box.MaxLat, Longitude: box.MaxLon},
		{Latitude: box.MinLat, Longitude: box.MaxLon},
		{Latitude: box.MinLat, Longitude: box.MinLon},
		{Latitude: box.MaxLat, Longitude: box.MinLon},
	}

	return samples, bits, nil
}
