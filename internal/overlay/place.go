package overlay

import "github.com/defvs/francegen/internal/coordmap"

// PlaceWays translates ways from model-CRS metres (netfetch's decode output)
// into world block-space metres, applying the same Z inversion as
// coordmap.ModelToWorld but without the integer floor, since rasterization
// needs sub-block precision for line buffering and polygon edges.
func PlaceWays(ways []Way, origin coordmap.Origin) []Way {
	placed := make([]Way, len(ways))
	for i, w := range ways {
		placed[i] = Way{Geometry: w.Geometry, Tags: w.Tags}
		if w.Line != nil {
			placed[i].Line = placePoints(w.Line, origin)
		}
		placed[i].Polygon = Polygon{
			Outer: placePoints(w.Polygon.Outer, origin),
		}
		for _, hole := range w.Polygon.Holes {
			placed[i].Polygon.Holes = append(placed[i].Polygon.Holes, placePoints(hole, origin))
		}
	}
	return placed
}

func placePoints(pts []Point, origin coordmap.Origin) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X - origin.X, Z: origin.Z - p.Z}
	}
	return out
}
