package web

import (
	"fmt"
	"geokit/config"
	"geokit/geodesy"
	"geokit/geohash"
	ownIo "geokit/io"
	"geokit/validate"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"math/big"
	"net/http"
	"net/url"
)

// MaxCells limits the number of cells a single bounding box request may produce.
const MaxCells = 100_000

type GeohashResponse struct {
	Geohash any `json:"geohash"`
	Bits    int `json:"bits,omitempty"`
}

type DecodeResponse struct {
	geohash.Decoded
	BoundingBox [4]float64 `json:"bbox"`
}

type CellsResponse struct {
	Geohashes []any `json:"geohashes"`
	Bits      int   `json:"bits,omitempty"`
}

type DistanceResponse struct {
	Distance float64 `json:"distance"`
	Unit     string  `json:"unit"`
	Bearing  float64 `json:"bearing"`
}

type handler struct {
	defaults config.DefaultsConfig
}

func (h *handler) encode(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	repr, bits, err := h.representation(params)
	if err != nil {
		writeOperationError(writer, "Error encoding coordinate", err)
		return
	}

	lat, err := validate.ParseLatitude(params.Get("lat"))
	if err != nil {
		writeOperationError(writer, "Error encoding coordinate", err)
		return
	}
	lon, err := validate.ParseLongitude(params.Get("lon"))
	if err != nil {
		writeOperationError(writer, "Error encoding coordinate", err)
		return
	}

	var code any
	switch repr {
	case geohash.IntRepresentation:
		code, err = geohash.EncodeInt(lat, lon, bits)
	case geohash.BigRepresentation:
		code, err = geohash.EncodeBig(lat, lon, bits)
	default:
		if params.Get("precision") == "auto" {
			code, err = geohash.EncodeAuto(params.Get("lat"), params.Get("lon"))
			break
		}
		var precision int
		precision, err = intParam(params, "precision", h.defaults.Precision)
		if err == nil {
			code, err = geohash.Encode(lat, lon, precision)
		}
	}
	if err != nil {
		writeOperationError(writer, "Error encoding coordinate", err)
		return
	}

	writeJson(writer, GeohashResponse{Geohash: jsonCode(code), Bits: bits})
}

func (h *handler) decode(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	hash := mux.Vars(request)["hash"]

	repr, bits, err := h.representation(params)
	if err != nil {
		writeOperationError(writer, "Error decoding geohash", err)
		return
	}

	box, err := repr.DecodeBoundingBox(hash, bits)
	if err != nil {
		writeOperationError(writer, "Error decoding geohash", err)
		return
	}

	if wantsGeoJson(params) {
		writeGeoJson(writer, []*geojson.Feature{ownIo.CellFeature(hash, box)})
		return
	}

	writeJson(writer, DecodeResponse{Decoded: box.Decoded(), BoundingBox: box.Array()})
}

func (h *handler) neighbors(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	hash := mux.Vars(request)["hash"]

	repr, bits, err := h.representation(params)
	if err != nil {
		writeOperationError(writer, "Error computing neighbors", err)
		return
	}

	var neighbors map[geohash.Direction]any
	switch repr {
	case geohash.IntRepresentation:
		var code uint64
		code, err = validate.ParseUint("geohash", hash)
		if err == nil {
			neighbors, err = anyNeighbors[uint64](geohash.AllNeighborsInt(code, bits))
		}
	case geohash.BigRepresentation:
		var code *big.Int
		code, err = validate.ParseBigInt("geohash", hash)
		if err == nil {
			neighbors, err = anyNeighbors[*big.Int](geohash.AllNeighborsBig(code, bits))
		}
	default:
		neighbors, err = anyNeighbors[string](geohash.AllNeighbors(hash))
	}
	if err != nil {
		writeOperationError(writer, "Error computing neighbors", err)
		return
	}

	if wantsGeoJson(params) {
		features := make([]*geojson.Feature, 0, len(geohash.Directions))
		for _, direction := range geohash.Directions {
			code := fmt.Sprint(neighbors[direction])
			box, err := repr.DecodeBoundingBox(code, bits)
			if err != nil {
				writeOperationError(writer, "Error decoding neighbor", err)
				return
			}
			feature := ownIo.CellFeature(code, box)
			feature.Properties["@direction"] = string(direction)
			features = append(features, feature)
		}
		writeGeoJson(writer, features)
		return
	}

	writeJson(writer, neighbors)
}

func (h *handler) neighbor(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	vars := mux.Vars(request)

	repr, bits, err := h.representation(params)
	if err != nil {
		writeOperationError(writer, "Error computing neighbor", err)
		return
	}

	direction, err := geohash.ParseDirection(vars["direction"])
	if err != nil {
		writeOperationError(writer, "Error computing neighbor", err)
		return
	}

	var neighbor any
	switch repr {
	case geohash.IntRepresentation:
		var code uint64
		code, err = validate.ParseUint("geohash", vars["hash"])
		if err == nil {
			neighbor, err = geohash.NeighborInt(code, bits, direction)
		}
	case geohash.BigRepresentation:
		var code *big.Int
		code, err = validate.ParseBigInt("geohash", vars["hash"])
		if err == nil {
			neighbor, err = geohash.NeighborBig(code, bits, direction)
		}
	default:
		neighbor, err = geohash.Neighbor(vars["hash"], direction)
	}
	if err != nil {
		writeOperationError(writer, "Error computing neighbor", err)
		return
	}

	writeJson(writer, GeohashResponse{Geohash: jsonCode(neighbor), Bits: bits})
}

func (h *handler) boundingBoxes(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	repr, bits, err := h.representation(params)
	if err != nil {
		writeOperationError(writer, "Error computing bounding boxes", err)
		return
	}

	var area [4]float64
	for i, name := range []string{"minLat", "minLon", "maxLat", "maxLon"} {
		parse := validate.ParseLatitude
		if i%2 == 1 {
			parse = validate.ParseLongitude
		}
		area[i], err = parse(params.Get(name))
		if err != nil {
			writeOperationError(writer, "Error computing bounding boxes", err)
			return
		}
	}

	var cells []any
	switch repr {
	case geohash.IntRepresentation:
		cells, err = collectCells[uint64](geohash.BoundingBoxesIntIterator(area[0], area[1], area[2], area[3], bits))
	case geohash.BigRepresentation:
		cells, err = collectCells[*big.Int](geohash.BoundingBoxesBigIterator(area[0], area[1], area[2], area[3], bits))
	default:
		var precision int
		precision, err = intParam(params, "precision", h.defaults.Precision)
		if err == nil {
			cells, err = collectCells[string](geohash.BoundingBoxesIterator(area[0], area[1], area[2], area[3], precision))
		}
	}
	if err != nil {
		writeOperationError(writer, "Error computing bounding boxes", err)
		return
	}

	if wantsGeoJson(params) {
		features := make([]*geojson.Feature, 0, len(cells))
		for _, cell := range cells {
			code := fmt.Sprint(cell)
			box, err := repr.DecodeBoundingBox(code, bits)
			if err != nil {
				writeOperationError(writer, "Error decoding cell", err)
				return
			}
			features = append(features, ownIo.CellFeature(code, box))
		}
		writeGeoJson(writer, features)
		return
	}

	writeJson(writer, CellsResponse{Geohashes: cells, Bits: bits})
}

func (h *handler) query(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	hash := mux.Vars(request)["hash"]

	bits, err := intParam(params, "bits", len(hash)*geohash.BitsPerChar)
	if err != nil {
		writeOperationError(writer, "Error creating query", err)
		return
	}

	query, err := geohash.BoundingBoxQuery(hash, bits)
	if err != nil {
		writeOperationError(writer, "Error creating query", err)
		return
	}

	writeJson(writer, query)
}

func (h *handler) circle(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	repr, err := geohash.ParseRepresentation(params.Get("repr"))
	if err != nil {
		writeOperationError(writer, "Error creating circle queries", err)
		return
	}
	lat, err := validate.ParseLatitude(params.Get("lat"))
	if err != nil {
		writeOperationError(writer, "Error creating circle queries", err)
		return
	}
	lon, err := validate.ParseLongitude(params.Get("lon"))
	if err != nil {
		writeOperationError(writer, "Error creating circle queries", err)
		return
	}
	radius, err := h.distanceInMeters(params, "radius")
	if err != nil {
		writeOperationError(writer, "Error creating circle queries", err)
		return
	}

	switch repr {
	case geohash.StringRepresentation:
		queries, err := geohash.BoundingCircleQueries(lat, lon, radius)
		if err != nil {
			writeOperationError(writer, "Error creating circle queries", err)
			return
		}
		writeJson(writer, queries)
	case geohash.IntRepresentation:
		ranges, err := geohash.BoundingCircleIntQueries(lat, lon, radius)
		if err != nil {
			writeOperationError(writer, "Error creating circle queries", err)
			return
		}
		writeJson(writer, ranges)
	default:
		writeOperationError(writer, "Error creating circle queries", validate.NewTypeError("representation", string(repr), "one of string, int"))
	}
}

func (h *handler) distance(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	var coordinates [4]float64
	for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		var err error
		parse := validate.ParseLatitude
		if i%2 == 1 {
			parse = validate.ParseLongitude
		}
		coordinates[i], err = parse(params.Get(name))
		if err != nil {
			writeOperationError(writer, "Error computing distance", err)
			return
		}
	}

	unit, err := h.unit(params)
	if err != nil {
		writeOperationError(writer, "Error computing distance", err)
		return
	}

	var meters float64
	switch params.Get("method") {
	case "", "haversine":
		meters, err = geodesy.DistanceInMeters(coordinates[0], coordinates[1], coordinates[2], coordinates[3])
	case "vincenty":
		meters, err = geodesy.VincentyDistanceInMeters(coordinates[0], coordinates[1], coordinates[2], coordinates[3])
	default:
		err = validate.NewTypeError("method", params.Get("method"), "one of haversine, vincenty")
	}
	if err != nil {
		writeOperationError(writer, "Error computing distance", err)
		return
	}

	bearing, err := geodesy.Bearing(coordinates[0], coordinates[1], coordinates[2], coordinates[3])
	if err != nil {
		writeOperationError(writer, "Error computing distance", err)
		return
	}

	writeJson(writer, DistanceResponse{Distance: unit.FromMeters(meters), Unit: string(unit), Bearing: bearing})
}

func (h *handler) destination(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	lat, err := validate.ParseLatitude(params.Get("lat"))
	if err != nil {
		writeOperationError(writer, "Error computing destination", err)
		return
	}
	lon, err := validate.ParseLongitude(params.Get("lon"))
	if err != nil {
		writeOperationError(writer, "Error computing destination", err)
		return
	}
	bearing, err := validate.ParseBearing(params.Get("bearing"))
	if err != nil {
		writeOperationError(writer, "Error computing destination", err)
		return
	}
	distance, err := h.distanceInMeters(params, "distance")
	if err != nil {
		writeOperationError(writer, "Error computing destination", err)
		return
	}

	destinationLat, destinationLon, err := geodesy.DestinationInMeters(lat, lon, distance, bearing)
	if err != nil {
		writeOperationError(writer, "Error computing destination", err)
		return
	}
	destination := geohash.Coordinate{Latitude: destinationLat, Longitude: destinationLon}

	if wantsGeoJson(params) {
		writeGeoJson(writer, []*geojson.Feature{
			ownIo.PointFeature("start", geohash.Coordinate{Latitude: lat, Longitude: lon}),
			ownIo.PointFeature("destination", destination),
		})
		return
	}

	writeJson(writer, destination)
}

// representation returns the requested representation together with its bit width. The bit width is 0 for strings,
// which use the precision instead.
func (h *handler) representation(params url.Values) (geohash.Representation, int, error) {
	repr, err := geohash.ParseRepresentation(params.Get("repr"))
	if err != nil {
		return "", 0, err
	}

	switch repr {
	case geohash.IntRepresentation:
		bits, err := intParam(params, "bits", h.defaults.Bits)
		return repr, bits, err
	case geohash.BigRepresentation:
		bits, err := intParam(params, "bits", h.defaults.BigBits)
		return repr, bits, err
	}
	return repr, 0, nil
}

func (h *handler) unit(params url.Values) (geodesy.Unit, error) {
	raw := params.Get("unit")
	if raw == "" {
		raw = h.defaults.Unit
	}
	return geodesy.ParseUnit(raw)
}

func (h *handler) distanceInMeters(params url.Values, name string) (float64, error) {
	distance, err := validate.ParseDistance(params.Get(name))
	if err != nil {
		return 0, err
	}
	unit, err := h.unit(params)
	if err != nil {
		return 0, err
	}
	return unit.ToMeters(distance), nil
}

func intParam(params url.Values, name string, fallback int) (int, error) {
	raw := params.Get(name)
	if raw == "" {
		return fallback, nil
	}
	return validate.ParseInt(name, raw)
}

func wantsGeoJson(params url.Values) bool {
	return params.Get("format") == "geojson"
}

// jsonCode turns wide integers into strings, since most JSON consumers can't handle integers above 2^53.
func jsonCode(code any) any {
	if bigCode, ok := code.(*big.Int); ok {
		return bigCode.String()
	}
	return code
}

func anyNeighbors[T any](neighbors geohash.Neighbors[T], err error) (map[geohash.Direction]any, error) {
	if err != nil {
		return nil, err
	}

	result := make(map[geohash.Direction]any, len(neighbors))
	for direction, code := range neighbors {
		result[direction] = jsonCode(code)
	}
	return result, nil
}

func collectCells[T any](iterator *geohash.CellIterator[T], err error) ([]any, error) {
	if err != nil {
		return nil, err
	}

	if iterator.Len() > MaxCells {
		return nil, validate.NewRangeError("number of cells", float64(iterator.Len()), 0, MaxCells)
	}
	sigolo.Debugf("Collect %d cells", iterator.Len())

	cells := make([]any, 0, iterator.Len())
	for iterator.HasNext() {
		cell, _ := iterator.Next()
		cells = append(cells, jsonCode(cell))
	}
	return cells, nil
}
