package geohash

import (
	"fmt"
	"github.com/paulmach/orb"
)

type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

var WorldBoundingBox = BoundingBox{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}

func BoundingBoxFromBound(bound orb.Bound) BoundingBox {
	return BoundingBox{
		MinLat: bound.Min.Lat(),
		MinLon: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLon: bound.Max.Lon(),
	}
}

func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Latitude:  (b.MinLat + b.MaxLat) / 2,
		Longitude: (b.MinLon + b.MaxLon) / 2,
	}
}

// ErrorMargin returns half the size of the box along each axis.
func (b BoundingBox) ErrorMargin() Coordinate {
	center := b.Center()
	return Coordinate{
		Latitude:  b.MaxLat - center.Latitude,
		Longitude: b.MaxLon - center.Longitude,
	}
}

func (b BoundingBox) Decoded() Decoded {
	return Decoded{
		Coordinate: b.Center(),
		Error:      b.ErrorMargin(),
	}
}

// Contains is inclusive on all edges.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat && c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

// Array returns the box in the [minLat, minLon, maxLat, maxLon] order used by all outer interfaces.
func (b BoundingBox) Array() [4]float64 {
	return [4]float64{b.MinLat, b.MinLon, b.MaxLat, b.MaxLon}
}

func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

func (b BoundingBox) Polygon() orb.Polygon {
	return b.Bound().ToPolygon()
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%f, %f, %f, %f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}
