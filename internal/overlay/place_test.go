package overlay

import (
	"testing"

	"github.com/defvs/francegen/internal/coordmap"
)

func TestPlaceWaysInvertsZAndSubtractsOrigin(t *testing.T) {
	origin := coordmap.Origin{X: 1000, Z: 2000}
	ways := []Way{
		{Geometry: "line", Line: []Point{{X: 1005, Z: 1997}, {X: 1010, Z: 1990}}},
		{Geometry: "polygon", Polygon: Polygon{
			Outer: []Point{{X: 1000, Z: 2000}, {X: 1010, Z: 2000}, {X: 1010, Z: 1990}},
			Holes: [][]Point{{{X: 1002, Z: 1998}, {X: 1004, Z: 1998}, {X: 1004, Z: 1996}}},
		}},
	}

	placed := PlaceWays(ways, origin)

	if got := placed[0].Line[0]; got.X != 5 || got.Z != 3 {
		t.Fatalf("line[0] = %+v, want (5,3)", got)
	}
	if got := placed[0].Line[1]; got.X != 10 || got.Z != 10 {
		t.Fatalf("line[1] = %+v, want (10,10)", got)
	}
	if got := placed[1].Polygon.Outer[0]; got.X != 0 || got.Z != 0 {
		t.Fatalf("outer[0] = %+v, want (0,0)", got)
	}
	if len(placed[1].Polygon.Holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(placed[1].Polygon.Holes))
	}
}
