// Package boundary turns stored site coordinates into polygon geometry.
package boundary

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/shopspring/decimal"
)

const squareMetresPerHectare = 10_000

type Point struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

type Summary struct {
	AreaHectares float64         `json:"area_hectares"`
	Centroid     Point           `json:"centroid"`
	GeoJSON      json.RawMessage `json:"geojson"`
}

var (
	minLat = decimal.NewFromInt(-90)
	maxLat = decimal.NewFromInt(90)
	minLon = decimal.NewFromInt(-180)
	maxLon = decimal.NewFromInt(180)
)

// Validate checks ranges and that the ring has at least three distinct vertices.
func Validate(points []Point) error {
	if len(points) < 3 {
		return fmt.Errorf("boundary needs at least 3 points, got %d", len(points))
	}
	distinct := map[string]struct{}{}
	for i, p := range points {
		if p.Latitude.LessThan(minLat) || p.Latitude.GreaterThan(maxLat) {
			return fmt.Errorf("point %d: latitude %s out of range", i, p.Latitude)
		}
		if p.Longitude.LessThan(minLon) || p.Longitude.GreaterThan(maxLon) {
			return fmt.Errorf("point %d: longitude %s out of range", i, p.Longitude)
		}
		distinct[p.Latitude.String()+","+p.Longitude.String()] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("boundary needs at least 3 distinct points")
	}
	return nil
}

// Polygon builds a closed ring in lon/lat order.
func Polygon(points []Point) orb.Polygon {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.Longitude.InexactFloat64(), p.Latitude.InexactFloat64()})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Summarize returns nil for an incomplete boundary.
func Summarize(points []Point) (*Summary, error) {
	if Validate(points) != nil {
		return nil, nil
	}
	poly := Polygon(points)
	centroid, _ := planar.CentroidArea(poly)

	raw, err := json.Marshal(geojson.NewGeometry(poly))
	if err != nil {
		return nil, err
	}
	return &Summary{
		AreaHectares: geo.Area(poly) / squareMetresPerHectare,
		Centroid: Point{
			Latitude:  decimal.NewFromFloat(centroid.Lat()),
			Longitude: decimal.NewFromFloat(centroid.Lon()),
		},
		GeoJSON: raw,
	}, nil
}
