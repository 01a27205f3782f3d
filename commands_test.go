package main

import (
	"bytes"
	"encoding/json"
	"geokit/config"
	"geokit/util"
	"geokit/validate"
	"geokit/web"
	"github.com/paulmach/orb/geojson"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testDefaults = config.DefaultsConfig{Precision: 9, Bits: 52, BigBits: 64, Unit: "m"}

var stringFlags = RepresentationFlags{Repr: "string"}

func newTestOutput(format string) (*output, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &output{format: format, writer: buffer}, buffer
}

func TestRepresentationFlags_resolve(t *testing.T) {
	repr, bits, err := RepresentationFlags{Repr: "int"}.resolve(testDefaults)
	util.AssertNil(t, err)
	util.AssertEqual(t, "int", string(repr))
	util.AssertEqual(t, 52, bits)

	_, bits, err = RepresentationFlags{Repr: "big"}.resolve(testDefaults)
	util.AssertNil(t, err)
	util.AssertEqual(t, 64, bits)

	_, bits, err = RepresentationFlags{Repr: "big", Bits: 110}.resolve(testDefaults)
	util.AssertNil(t, err)
	util.AssertEqual(t, 110, bits)

	_, bits, err = RepresentationFlags{Repr: "string", Bits: 20}.resolve(testDefaults)
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, bits)
}

func TestRunEncode(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("text")

	// Act
	err := runEncode(out, testDefaults, "64.0123456789", "64.0123456789", "10", stringFlags)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, "v7ms0th6gy\n", buffer.String())
}

func TestRunEncode_defaultsAndAuto(t *testing.T) {
	out, buffer := newTestOutput("text")
	err := runEncode(out, testDefaults, "0", "0", "", stringFlags)
	util.AssertNil(t, err)
	util.AssertEqual(t, "7zzzzzzzz\n", buffer.String())

	out, buffer = newTestOutput("text")
	err = runEncode(out, testDefaults, "53.55", "9.99", "auto", stringFlags)
	util.AssertNil(t, err)
	util.AssertEqual(t, "u1x0ek6\n", buffer.String())

	out, buffer = newTestOutput("text")
	err = runEncode(out, testDefaults, "0", "0", "", RepresentationFlags{Repr: "int", Bits: 5})
	util.AssertNil(t, err)
	util.AssertEqual(t, "7\n", buffer.String())
}

func TestRunEncode_json(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("json")

	// Act
	err := runEncode(out, testDefaults, "64.0123456789", "64.0123456789", "", RepresentationFlags{Repr: "big", Bits: 110})

	// Assert
	util.AssertNil(t, err)
	var response web.GeohashResponse
	err = json.Unmarshal(buffer.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, "1104906081738896117776798162853502", response.Geohash)
	util.AssertEqual(t, 110, response.Bits)
}

func TestRunEncode_invalidInput(t *testing.T) {
	out, _ := newTestOutput("text")

	err := runEncode(out, testDefaults, "91", "0", "", stringFlags)
	util.AssertTrue(t, validate.IsRangeError(err))

	err = runEncode(out, testDefaults, "0", "0", "many", stringFlags)
	util.AssertTrue(t, validate.IsTypeError(err))

	err = runEncode(out, testDefaults, "0", "0", "23", stringFlags)
	util.AssertTrue(t, validate.IsRangeError(err))
}

func TestRunDecode(t *testing.T) {
	out, buffer := newTestOutput("text")
	err := runDecode(out, testDefaults, "7", stringFlags)
	util.AssertNil(t, err)
	util.AssertEqual(t, "-22.5 -22.5 (±22.5, ±22.5)\n", buffer.String())

	out, buffer = newTestOutput("json")
	err = runDecode(out, testDefaults, "7", RepresentationFlags{Repr: "int", Bits: 5})
	util.AssertNil(t, err)
	var response web.DecodeResponse
	err = json.Unmarshal(buffer.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, [4]float64{-45, -45, 0, 0}, response.BoundingBox)

	err = runDecode(out, testDefaults, "v7ma", stringFlags)
	util.AssertTrue(t, validate.IsSyntaxError(err))
}

func TestRunDecode_geoJson(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("geojson")

	// Act
	err := runDecode(out, testDefaults, "u1x0", stringFlags)

	// Assert
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, len(collection.Features))
	util.AssertEqual(t, "u1x0", collection.Features[0].Properties["@geohash"])
}

func TestRunDecode_geoJsonFile(t *testing.T) {
	// Arrange
	filename := filepath.Join(t.TempDir(), "cell.geojson")
	out, buffer := newTestOutput("geojson")
	out.file = filename

	// Act
	err := runDecode(out, testDefaults, "u1x0", stringFlags)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, buffer.Len())
	fileContent, err := os.ReadFile(filename)
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(fileContent)
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, len(collection.Features))
}

func TestRunNeighbors(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("text")

	// Act
	err := runNeighbors(out, testDefaults, "gbsuv", stringFlags)

	// Assert
	util.AssertNil(t, err)
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	util.AssertEqual(t, 8, len(lines))
	util.AssertEqual(t, "north: gbsvj", lines[0])
	util.AssertEqual(t, "east: gbsuy", lines[2])
	util.AssertEqual(t, "south: gbsut", lines[4])
	util.AssertEqual(t, "west: gbsuu", lines[6])
}

func TestRunNeighbors_geoJson(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("geojson")

	// Act
	err := runNeighbors(out, testDefaults, "3667560297078529", RepresentationFlags{Repr: "int"})

	// Assert
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 8, len(collection.Features))
	util.AssertEqual(t, "north", collection.Features[0].Properties["@direction"])
	util.AssertEqual(t, "3667560297078532", collection.Features[0].Properties["@geohash"])
}

func TestRunNeighbor(t *testing.T) {
	out, buffer := newTestOutput("text")
	err := runNeighbor(out, testDefaults, "v7ms0th6gy", "N", stringFlags)
	util.AssertNil(t, err)
	util.AssertEqual(t, "v7ms0th6gz\n", buffer.String())

	err = runNeighbor(out, testDefaults, "v7ms0th6gy", "up", stringFlags)
	util.AssertTrue(t, validate.IsTypeError(err))
}

func TestRunBoundingBoxes(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("text")

	// Act
	err := runBoundingBoxes(out, testDefaults, [4]string{"53.5", "9.9", "53.6", "10.1"}, 5, stringFlags)

	// Assert
	util.AssertNil(t, err)
	cells := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	util.AssertEqual(t, 15, len(cells))
	util.AssertEqual(t, "u1x03", cells[0])
	util.AssertEqual(t, "u1x0v", cells[14])
}

func TestRunBoundingBoxes_json(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("json")

	// Act
	err := runBoundingBoxes(out, testDefaults, [4]string{"0", "0", "10", "10"}, 1, stringFlags)

	// Assert
	util.AssertNil(t, err)
	var cells []string
	err = json.Unmarshal(buffer.Bytes(), &cells)
	util.AssertNil(t, err)
	util.AssertEqual(t, []string{"7", "k", "e", "s"}, cells)
}

func TestRunBoundingBoxes_geoJson(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("geojson")

	// Act
	err := runBoundingBoxes(out, testDefaults, [4]string{"53.5", "9.9", "53.6", "10.1"}, 5, stringFlags)

	// Assert
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 15, len(collection.Features))
	util.AssertEqual(t, "u1x03", collection.Features[0].Properties["@geohash"])
	util.AssertEqual(t, "u1x0v", collection.Features[14].Properties["@geohash"])
}

func TestRunBoundingBoxes_emptyAreaAsGeoJson(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("geojson")

	// Act
	err := runBoundingBoxes(out, testDefaults, [4]string{"10", "0", "0", "10"}, 3, stringFlags)

	// Assert
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, len(collection.Features))
}

func TestRunQuery(t *testing.T) {
	out, buffer := newTestOutput("text")
	err := runQuery(out, testDefaults, "v7ms", 52, RepresentationFlags{Repr: "string", Bits: 18})
	util.AssertNil(t, err)
	util.AssertEqual(t, "v7ms v7mw\n", buffer.String())

	out, buffer = newTestOutput("text")
	err = runQuery(out, testDefaults, "7", 10, RepresentationFlags{Repr: "int", Bits: 5})
	util.AssertNil(t, err)
	util.AssertEqual(t, "224 256\n", buffer.String())

	err = runQuery(out, testDefaults, "7", 52, RepresentationFlags{Repr: "big"})
	util.AssertTrue(t, validate.IsTypeError(err))
}

func TestRunCircle(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("text")

	// Act
	err := runCircle(out, testDefaults, "53.5511", "9.9937", "1", "km", stringFlags)

	// Assert
	util.AssertNil(t, err)
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	util.AssertTrue(t, len(lines) >= 1 && len(lines) <= 9)
	for _, line := range lines {
		util.AssertEqual(t, 2, len(strings.Fields(line)))
	}

	out, _ = newTestOutput("geojson")
	err = runCircle(out, testDefaults, "53.5511", "9.9937", "1", "km", stringFlags)
	util.AssertNotNil(t, err)
}

func TestRunDistance(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("json")

	// Act
	err := runDistance(out, testDefaults, [4]string{"0", "0", "0", "1"}, "km", "haversine")

	// Assert
	util.AssertNil(t, err)
	var response web.DistanceResponse
	err = json.Unmarshal(buffer.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertApprox(t, 111.19492664455873, response.Distance, 1e-9)
	util.AssertApprox(t, 90.0, response.Bearing, 1e-9)
	util.AssertEqual(t, "km", response.Unit)

	err = runDistance(out, testDefaults, [4]string{"0", "0", "0", "1"}, "", "flat")
	util.AssertTrue(t, validate.IsTypeError(err))
}

func TestRunDestination(t *testing.T) {
	// Arrange
	out, buffer := newTestOutput("geojson")

	// Act
	err := runDestination(out, testDefaults, "0", "0", "111.19492664455873", "90", "km")

	// Assert
	util.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 2, len(collection.Features))
	util.AssertEqual(t, "destination", collection.Features[1].Properties["@name"])
	util.AssertApprox(t, 1.0, collection.Features[1].Geometry.Bound().Min[0], 1e-9)
}
