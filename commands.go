package main

import (
	"encoding/json"
	"fmt"
	"geokit/config"
	"geokit/geodesy"
	"geokit/geohash"
	ownIo "geokit/io"
	"geokit/validate"
	"geokit/web"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"io"
	"math/big"
	"os"
	"strings"
)

var stdout io.Writer = os.Stdout

type output struct {
	format string
	writer io.Writer
	// file receives GeoJSON output instead of the writer when set.
	file   string
}

// print writes either the text, the JSON form of the value or the features as GeoJSON. Commands without geometric
// output pass nil features.
func (o *output) print(text string, value any, features []*geojson.Feature) error {
	switch o.format {
	case "json":
		jsonBytes, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return errors.Wrap(err, "Unable to marshal result to JSON")
		}
		_, err = fmt.Fprintln(o.writer, string(jsonBytes))
		return err
	case "geojson":
		if features == nil {
			return errors.New("This command has no GeoJSON output, use text or json instead")
		}
		if o.file != "" {
			return ownIo.WriteFeaturesAsGeoJsonFile(features, o.file)
		}
		return ownIo.WriteFeaturesAsGeoJson(features, o.writer)
	}
	_, err := fmt.Fprintln(o.writer, text)
	return err
}

// resolve returns the selected representation and its bit width, which falls back to the configured width. The width
// is 0 for strings.
func (f RepresentationFlags) resolve(defaults config.DefaultsConfig) (geohash.Representation, int, error) {
	repr, err := geohash.ParseRepresentation(f.Repr)
	if err != nil {
		return "", 0, err
	}

	bits := f.Bits
	switch {
	case repr == geohash.StringRepresentation:
		bits = 0
	case bits != 0:
	case repr == geohash.IntRepresentation:
		bits = defaults.Bits
	case repr == geohash.BigRepresentation:
		bits = defaults.BigBits
	}
	return repr, bits, nil
}

func runEncode(out *output, defaults config.DefaultsConfig, rawLat string, rawLon string, rawPrecision string, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}
	lat, lon, err := parseCoordinate(rawLat, rawLon)
	if err != nil {
		return err
	}

	var code any
	switch {
	case repr == geohash.IntRepresentation:
		code, err = geohash.EncodeInt(lat, lon, bits)
	case repr == geohash.BigRepresentation:
		code, err = geohash.EncodeBig(lat, lon, bits)
	case rawPrecision == "auto":
		code, err = geohash.EncodeAuto(rawLat, rawLon)
	default:
		precision := defaults.Precision
		if rawPrecision != "" {
			precision, err = validate.ParseInt("precision", rawPrecision)
			if err != nil {
				return err
			}
		}
		code, err = geohash.Encode(lat, lon, precision)
	}
	if err != nil {
		return err
	}

	hash := fmt.Sprint(code)
	box, err := repr.DecodeBoundingBox(hash, bits)
	if err != nil {
		return err
	}

	return out.print(hash, web.GeohashResponse{Geohash: hash, Bits: bits}, []*geojson.Feature{ownIo.CellFeature(hash, box)})
}

func runDecode(out *output, defaults config.DefaultsConfig, hash string, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}

	box, err := repr.DecodeBoundingBox(hash, bits)
	if err != nil {
		return err
	}

	decoded := box.Decoded()
	text := fmt.Sprintf("%v %v (±%v, ±%v)", decoded.Latitude, decoded.Longitude, decoded.Error.Latitude, decoded.Error.Longitude)
	return out.print(text, web.DecodeResponse{Decoded: decoded, BoundingBox: box.Array()}, []*geojson.Feature{ownIo.CellFeature(hash, box)})
}

func runNeighbors(out *output, defaults config.DefaultsConfig, hash string, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}

	var neighbors map[geohash.Direction]string
	switch repr {
	case geohash.IntRepresentation:
		var code uint64
		code, err = validate.ParseUint("geohash", hash)
		if err == nil {
			neighbors, err = formatNeighbors[uint64](geohash.AllNeighborsInt(code, bits))
		}
	case geohash.BigRepresentation:
		var code *big.Int
		code, err = validate.ParseBigInt("geohash", hash)
		if err == nil {
			neighbors, err = formatNeighbors[*big.Int](geohash.AllNeighborsBig(code, bits))
		}
	default:
		neighbors, err = formatNeighbors[string](geohash.AllNeighbors(hash))
	}
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(geohash.Directions))
	features := make([]*geojson.Feature, 0, len(geohash.Directions))
	for _, direction := range geohash.Directions {
		code := neighbors[direction]
		lines = append(lines, fmt.Sprintf("%s: %s", direction, code))

		feature, err := directionFeature(repr, code, bits, direction)
		if err != nil {
			return err
		}
		features = append(features, feature)
	}

	return out.print(strings.Join(lines, "\n"), neighbors, features)
}

func runNeighbor(out *output, defaults config.DefaultsConfig, hash string, rawDirection string, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}
	direction, err := geohash.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	var neighbor any
	switch repr {
	case geohash.IntRepresentation:
		var code uint64
		code, err = validate.ParseUint("geohash", hash)
		if err == nil {
			neighbor, err = geohash.NeighborInt(code, bits, direction)
		}
	case geohash.BigRepresentation:
		var code *big.Int
		code, err = validate.ParseBigInt("geohash", hash)
		if err == nil {
			neighbor, err = geohash.NeighborBig(code, bits, direction)
		}
	default:
		neighbor, err = geohash.Neighbor(hash, direction)
	}
	if err != nil {
		return err
	}

	code := fmt.Sprint(neighbor)
	feature, err := directionFeature(repr, code, bits, direction)
	if err != nil {
		return err
	}

	return out.print(code, web.GeohashResponse{Geohash: code, Bits: bits}, []*geojson.Feature{feature})
}

func runBoundingBoxes(out *output, defaults config.DefaultsConfig, rawArea [4]string, precision int, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}

	var area [4]float64
	for i := 0; i < len(rawArea); i += 2 {
		area[i], area[i+1], err = parseCoordinate(rawArea[i], rawArea[i+1])
		if err != nil {
			return err
		}
	}

	switch repr {
	case geohash.IntRepresentation:
		iterator, err := geohash.BoundingBoxesIntIterator(area[0], area[1], area[2], area[3], bits)
		if err != nil {
			return err
		}
		return printCells[uint64](out, repr, bits, iterator)
	case geohash.BigRepresentation:
		iterator, err := geohash.BoundingBoxesBigIterator(area[0], area[1], area[2], area[3], bits)
		if err != nil {
			return err
		}
		return printCells[*big.Int](out, repr, bits, iterator)
	}

	if precision == 0 {
		precision = defaults.Precision
	}
	iterator, err := geohash.BoundingBoxesIterator(area[0], area[1], area[2], area[3], precision)
	if err != nil {
		return err
	}
	return printCells[string](out, repr, bits, iterator)
}

func runQuery(out *output, defaults config.DefaultsConfig, hash string, depth int, flags RepresentationFlags) error {
	repr, bits, err := flags.resolve(defaults)
	if err != nil {
		return err
	}

	switch repr {
	case geohash.StringRepresentation:
		queryBits := flags.Bits
		if queryBits == 0 {
			queryBits = len(hash) * geohash.BitsPerChar
		}
		query, err := geohash.BoundingBoxQuery(hash, queryBits)
		if err != nil {
			return err
		}
		return out.print(query.Start+" "+query.End, query, nil)
	case geohash.IntRepresentation:
		code, err := validate.ParseUint("geohash", hash)
		if err != nil {
			return err
		}
		queryRange, err := geohash.IntQueryRange(code, bits, depth)
		if err != nil {
			return err
		}
		return out.print(fmt.Sprintf("%d %d", queryRange.Start, queryRange.End), queryRange, nil)
	}
	return validate.NewTypeError("representation", string(repr), "one of string, int")
}

func runCircle(out *output, defaults config.DefaultsConfig, rawLat string, rawLon string, rawRadius string, rawUnit string, flags RepresentationFlags) error {
	repr, _, err := flags.resolve(defaults)
	if err != nil {
		return err
	}
	lat, lon, err := parseCoordinate(rawLat, rawLon)
	if err != nil {
		return err
	}
	radius, err := parseDistance(rawRadius, rawUnit, defaults)
	if err != nil {
		return err
	}

	switch repr {
	case geohash.StringRepresentation:
		queries, err := geohash.BoundingCircleQueries(lat, lon, radius)
		if err != nil {
			return err
		}
		lines := make([]string, len(queries))
		for i, query := range queries {
			lines[i] = query.Start + " " + query.End
		}
		return out.print(strings.Join(lines, "\n"), queries, nil)
	case geohash.IntRepresentation:
		ranges, err := geohash.BoundingCircleIntQueries(lat, lon, radius)
		if err != nil {
			return err
		}
		lines := make([]string, len(ranges))
		for i, queryRange := range ranges {
			lines[i] = fmt.Sprintf("%d %d", queryRange.Start, queryRange.End)
		}
		return out.print(strings.Join(lines, "\n"), ranges, nil)
	}
	return validate.NewTypeError("representation", string(repr), "one of string, int")
}

func runDistance(out *output, defaults config.DefaultsConfig, rawCoordinates [4]string, rawUnit string, method string) error {
	lat1, lon1, err := parseCoordinate(rawCoordinates[0], rawCoordinates[1])
	if err != nil {
		return err
	}
	lat2, lon2, err := parseCoordinate(rawCoordinates[2], rawCoordinates[3])
	if err != nil {
		return err
	}
	unit, err := parseUnit(rawUnit, defaults)
	if err != nil {
		return err
	}

	var meters float64
	switch method {
	case "", "haversine":
		meters, err = geodesy.DistanceInMeters(lat1, lon1, lat2, lon2)
	case "vincenty":
		meters, err = geodesy.VincentyDistanceInMeters(lat1, lon1, lat2, lon2)
	default:
		err = validate.NewTypeError("method", method, "one of haversine, vincenty")
	}
	if err != nil {
		return err
	}

	bearing, err := geodesy.Bearing(lat1, lon1, lat2, lon2)
	if err != nil {
		return err
	}

	distance := unit.FromMeters(meters)
	features := []*geojson.Feature{
		ownIo.PointFeature("start", geohash.Coordinate{Latitude: lat1, Longitude: lon1}),
		ownIo.PointFeature("end", geohash.Coordinate{Latitude: lat2, Longitude: lon2}),
	}
	return out.print(fmt.Sprintf("%v %s, initial bearing %v°", distance, unit, bearing), web.DistanceResponse{Distance: distance, Unit: string(unit), Bearing: bearing}, features)
}

func runDestination(out *output, defaults config.DefaultsConfig, rawLat string, rawLon string, rawDistance string, rawBearing string, rawUnit string) error {
	lat, lon, err := parseCoordinate(rawLat, rawLon)
	if err != nil {
		return err
	}
	bearing, err := validate.ParseBearing(rawBearing)
	if err != nil {
		return err
	}
	distance, err := parseDistance(rawDistance, rawUnit, defaults)
	if err != nil {
		return err
	}

	destinationLat, destinationLon, err := geodesy.DestinationInMeters(lat, lon, distance, bearing)
	if err != nil {
		return err
	}
	destination := geohash.Coordinate{Latitude: destinationLat, Longitude: destinationLon}

	features := []*geojson.Feature{
		ownIo.PointFeature("start", geohash.Coordinate{Latitude: lat, Longitude: lon}),
		ownIo.PointFeature("destination", destination),
	}
	return out.print(fmt.Sprintf("%v %v", destination.Latitude, destination.Longitude), destination, features)
}

func parseCoordinate(rawLat string, rawLon string) (float64, float64, error) {
	lat, err := validate.ParseLatitude(rawLat)
	if err != nil {
		return 0, 0, err
	}
	lon, err := validate.ParseLongitude(rawLon)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseUnit(raw string, defaults config.DefaultsConfig) (geodesy.Unit, error) {
	if raw == "" {
		raw = defaults.Unit
	}
	return geodesy.ParseUnit(raw)
}

// parseDistance returns the given distance in meters.
func parseDistance(raw string, rawUnit string, defaults config.DefaultsConfig) (float64, error) {
	distance, err := validate.ParseDistance(raw)
	if err != nil {
		return 0, err
	}
	unit, err := parseUnit(rawUnit, defaults)
	if err != nil {
		return 0, err
	}
	return unit.ToMeters(distance), nil
}

func directionFeature(repr geohash.Representation, code string, bits int, direction geohash.Direction) (*geojson.Feature, error) {
	box, err := repr.DecodeBoundingBox(code, bits)
	if err != nil {
		return nil, err
	}
	feature := ownIo.CellFeature(code, box)
	feature.Properties["@direction"] = string(direction)
	return feature, nil
}

func formatNeighbors[T any](neighbors geohash.Neighbors[T], err error) (map[geohash.Direction]string, error) {
	if err != nil {
		return nil, err
	}

	result := make(map[geohash.Direction]string, len(neighbors))
	for direction, code := range neighbors {
		result[direction] = fmt.Sprint(code)
	}
	return result, nil
}

// listedCells caps the capacity reserved up front for cells printed as JSON or GeoJSON.
const listedCells = 1 << 16

func printCells[T any](out *output, repr geohash.Representation, bits int, iterator *geohash.CellIterator[T]) error {
	if out.format == "text" {
		// Cells are printed as they are produced, so large areas don't need to fit into memory
		for iterator.HasNext() {
			cell, _ := iterator.Next()
			if _, err := fmt.Fprintln(out.writer, cell); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]string, 0, min(iterator.Len(), listedCells))
	for iterator.HasNext() {
		cell, _ := iterator.Next()
		cells = append(cells, fmt.Sprint(cell))
	}
	if out.format != "geojson" {
		return out.print("", cells, nil)
	}

	features, err := cellFeatures(repr, bits, cells)
	if err != nil {
		return err
	}
	return out.print("", cells, features)
}

// cellFeatures turns the listed cells of any representation into polygon features.
func cellFeatures(repr geohash.Representation, bits int, cells []string) ([]*geojson.Feature, error) {
	if repr == geohash.StringRepresentation {
		return ownIo.CellFeatures(cells)
	}

	features := make([]*geojson.Feature, 0, len(cells))
	for _, code := range cells {
		box, err := repr.DecodeBoundingBox(code, bits)
		if err != nil {
			return nil, err
		}
		features = append(features, ownIo.CellFeature(code, box))
	}
	return features, nil
}
