package netfetch

import (
	"testing"

	"github.com/defvs/francegen/internal/coord"
)

func TestDecodeOverpassWaysLine(t *testing.T) {
	data := []byte(`{
		"elements": [
			{"type": "way", "tags": {"highway": "residential"}, "geometry": [
				{"lat": 0.0, "lon": 0.0},
				{"lat": 0.0, "lon": 1.0}
			]}
		]
	}`)
	ways, err := DecodeOverpassWays(data, &coord.WGS84Identity{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ways) != 1 || ways[0].Geometry != "line" {
		t.Fatalf("expected one line way, got %+v", ways)
	}
	if len(ways[0].Line) != 2 {
		t.Fatalf("expected 2 points, got %d", len(ways[0].Line))
	}
}

func TestDecodeOverpassWaysClosedWayIsPolygon(t *testing.T) {
	data := []byte(`{
		"elements": [
			{"type": "way", "tags": {"building": "yes"}, "geometry": [
				{"lat": 0.0, "lon": 0.0},
				{"lat": 0.0, "lon": 1.0},
				{"lat": 1.0, "lon": 1.0},
				{"lat": 0.0, "lon": 0.0}
			]}
		]
	}`)
	ways, err := DecodeOverpassWays(data, &coord.WGS84Identity{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ways) != 1 || ways[0].Geometry != "polygon" {
		t.Fatalf("expected one polygon way, got %+v", ways)
	}
}

func TestDecodeOverpassWaysMultipolygonRelation(t *testing.T) {
	data := []byte(`{
		"elements": [
			{"type": "relation", "tags": {"type": "multipolygon", "natural": "water"}, "members": [
				{"type": "way", "role": "outer", "geometry": [
					{"lat": 0.0, "lon": 0.0}, {"lat": 0.0, "lon": 4.0}, {"lat": 4.0, "lon": 4.0}
				]},
				{"type": "way", "role": "inner", "geometry": [
					{"lat": 1.0, "lon": 1.0}, {"lat": 1.0, "lon": 2.0}, {"lat": 2.0, "lon": 2.0}
				]}
			]}
		]
	}`)
	ways, err := DecodeOverpassWays(data, &coord.WGS84Identity{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ways) != 1 || ways[0].Geometry != "polygon" {
		t.Fatalf("expected one polygon way, got %+v", ways)
	}
	if len(ways[0].Polygon.Holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(ways[0].Polygon.Holes))
	}
}

func TestDecodeOverpassWaysNonMultipolygonRelationIgnored(t *testing.T) {
	data := []byte(`{
		"elements": [
			{"type": "relation", "tags": {"type": "route"}, "members": [
				{"type": "way", "role": "", "geometry": [
					{"lat": 0.0, "lon": 0.0}, {"lat": 0.0, "lon": 1.0}, {"lat": 1.0, "lon": 1.0}
				]}
			]}
		]
	}`)
	ways, err := DecodeOverpassWays(data, &coord.WGS84Identity{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ways) != 0 {
		t.Fatalf("expected no ways from a route relation, got %+v", ways)
	}
}

func TestBuildOverpassBBoxOrdersSouthWestNorthEast(t *testing.T) {
	bbox := BuildOverpassBBox(&coord.WGS84Identity{}, 10, 5, 1, 2)
	if bbox != "2.000000,1.000000,5.000000,10.000000" {
		t.Errorf("got %q", bbox)
	}
}
