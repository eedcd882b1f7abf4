package overlay

import "testing"

func TestRasterizePolygonSquare(t *testing.T) {
	p := Polygon{Outer: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	hits := RasterizePolygon(p)
	if !hits[[2]int{5, 5}] {
		t.Errorf("expected centre column covered")
	}
	if hits[[2]int{20, 20}] {
		t.Errorf("expected far-away column uncovered")
	}
}

func TestRasterizePolygonHole(t *testing.T) {
	p := Polygon{
		Outer: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Holes: [][]Point{{{3, 3}, {7, 3}, {7, 7}, {3, 7}}},
	}
	hits := RasterizePolygon(p)
	if !hits[[2]int{1, 1}] {
		t.Errorf("expected column near outer edge covered")
	}
	if hits[[2]int{5, 5}] {
		t.Errorf("expected hole centre to be uncovered")
	}
}

func TestRasterizePolygonTooFewPoints(t *testing.T) {
	p := Polygon{Outer: []Point{{0, 0}, {1, 1}}}
	if hits := RasterizePolygon(p); len(hits) != 0 {
		t.Errorf("expected no hits for a degenerate 2-point ring")
	}
}
