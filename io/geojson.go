package io

import (
	"geokit/geohash"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"io"
	"os"
	"time"
)

// CellFeature returns the cell as polygon feature. The code is the textual form of the geohash in any representation.
func CellFeature(code string, box geohash.BoundingBox) *geojson.Feature {
	feature := geojson.NewFeature(box.Polygon())

	center := box.Center()
	feature.Properties["@geohash"] = code
	feature.Properties["@center"] = []float64{center.Latitude, center.Longitude}
	feature.Properties["@bbox"] = box.Array()

	return feature
}

// CellFeatures decodes each geohash string into a polygon feature.
func CellFeatures(hashes []string) ([]*geojson.Feature, error) {
	features := make([]*geojson.Feature, 0, len(hashes))
	for _, hash := range hashes {
		box, err := geohash.DecodeBoundingBox(hash)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to create GeoJSON feature for geohash '%s'", hash)
		}
		features = append(features, CellFeature(hash, box))
	}
	return features, nil
}

func PointFeature(name string, coordinate geohash.Coordinate) *geojson.Feature {
	feature := geojson.NewFeature(coordinate.Point())
	feature.Properties["@name"] = name
	return feature
}

func WriteFeaturesAsGeoJsonFile(features []*geojson.Feature, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create GeoJSON file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for GeoJSON file %s", file.Name()))
	}()

	return WriteFeaturesAsGeoJson(features, file)
}

func WriteFeaturesAsGeoJson(features []*geojson.Feature, writer io.Writer) error {
	sigolo.Debugf("Write %d features to GeoJSON", len(features))
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	featureCollection.Features = append(featureCollection.Features, features...)

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return err
	}

	sigolo.Debugf("Finished writing in %s", time.Since(writeStartTime))

	return nil
}
