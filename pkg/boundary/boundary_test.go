package boundary

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func pt(lat, lon string) Point {
	return Point{Latitude: decimal.RequireFromString(lat), Longitude: decimal.RequireFromString(lon)}
}

// roughly a 0.01 x 0.01 degree square on the equator (~1.11km a side)
func square() []Point {
	return []Point{pt("0", "0"), pt("0", "0.01"), pt("0.01", "0.01"), pt("0.01", "0")}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      []Point
		wantErr bool
	}{
		{"square", square(), false},
		{"two points", []Point{pt("0", "0"), pt("1", "1")}, true},
		{"duplicates", []Point{pt("0", "0"), pt("0", "0"), pt("1", "1")}, true},
		{"lat range", []Point{pt("91", "0"), pt("0", "1"), pt("1", "1")}, true},
		{"lon range", []Point{pt("0", "-181"), pt("0", "1"), pt("1", "1")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.in); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestPolygon_ClosesRing(t *testing.T) {
	poly := Polygon(square())
	if len(poly) != 1 || len(poly[0]) != 5 || !poly[0].Closed() {
		t.Fatalf("ring not closed: %v", poly)
	}
	// lon/lat order
	if poly[0][1][0] != 0.01 || poly[0][1][1] != 0 {
		t.Fatalf("unexpected vertex order: %v", poly[0][1])
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(square())
	if err != nil || s == nil {
		t.Fatalf("Summarize: %v %v", s, err)
	}
	// ~1.113km * ~1.106km ≈ 123 ha
	if s.AreaHectares < 110 || s.AreaHectares > 135 {
		t.Fatalf("area = %.2f ha", s.AreaHectares)
	}
	lat, lon := s.Centroid.Latitude.InexactFloat64(), s.Centroid.Longitude.InexactFloat64()
	if math.Abs(lat-0.005) > 1e-9 || math.Abs(lon-0.005) > 1e-9 {
		t.Fatalf("centroid = %v,%v", lat, lon)
	}
	var gj map[string]any
	if err := json.Unmarshal(s.GeoJSON, &gj); err != nil || gj["type"] != "Polygon" {
		t.Fatalf("geojson = %s (%v)", s.GeoJSON, err)
	}

	if s, err := Summarize(square()[:2]); s != nil || err != nil {
		t.Fatalf("incomplete boundary should summarize to nil, got %v %v", s, err)
	}
}
