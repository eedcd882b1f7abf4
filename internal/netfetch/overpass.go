package netfetch

import (
	"encoding/json"
	"fmt"

	"github.com/defvs/francegen/internal/coord"
	"github.com/defvs/francegen/internal/overlay"
)

// BuildOverpassBBox formats a DEM bounding box (already reprojected to
// WGS84 lon/lat) as the Overpass QL "{{bbox}}" token: south,west,north,east.
func BuildOverpassBBox(proj coord.Projection, minX, minZ, maxX, maxZ float64) string {
	lon1, lat1 := proj.ToWGS84(minX, minZ)
	lon2, lat2 := proj.ToWGS84(maxX, maxZ)
	south, north := lat1, lat2
	west, east := lon1, lon2
	if south > north {
		south, north = north, south
	}
	if west > east {
		west, east = east, west
	}
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", south, west, north, east)
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	Tags     map[string]string `json:"tags"`
	Geometry []overpassLatLon  `json:"geometry"`
	Members  []overpassMember  `json:"members"`
}

type overpassLatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassMember struct {
	Type     string           `json:"type"`
	Role     string           `json:"role"`
	Geometry []overpassLatLon `json:"geometry"`
}

// DecodeOverpassWays parses an Overpass [out:json] response body, built
// with "out geom qt;" (inline node geometry on every way and relation
// member, per spec §4.5's OSM path), into overlay.Way values. Coordinates
// are reprojected from WGS84 back into the DEM's model CRS via proj.
func DecodeOverpassWays(data []byte, proj coord.Projection) ([]overlay.Way, error) {
	var resp overpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("netfetch: decode overpass response: %w", err)
	}

	var ways []overlay.Way
	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			if w, ok := wayFromGeometry(el.Tags, el.Geometry, proj); ok {
				ways = append(ways, w)
			}
		case "relation":
			ways = append(ways, multipolygonWays(el, proj)...)
		}
	}
	return ways, nil
}

func wayFromGeometry(tags map[string]string, geom []overpassLatLon, proj coord.Projection) (overlay.Way, bool) {
	if len(geom) < 2 {
		return overlay.Way{}, false
	}
	pts := projectPoints(geom, proj)
	if len(pts) >= 4 && pts[0] == pts[len(pts)-1] {
		return overlay.Way{Geometry: "polygon", Tags: tags, Polygon: overlay.Polygon{Outer: pts}}, true
	}
	return overlay.Way{Geometry: "line", Tags: tags, Line: pts}, true
}

// multipolygonWays builds a single polygon Way per relation, combining its
// "outer" member ring with all "inner" rings as holes (spec §4.5: "closed
// ways + multipolygon relations").
func multipolygonWays(el overpassElement, proj coord.Projection) []overlay.Way {
	if el.Tags["type"] != "multipolygon" {
		return nil
	}

	var poly overlay.Polygon
	haveOuter := false
	for _, m := range el.Members {
		if len(m.Geometry) < 3 {
			continue
		}
		ring := projectPoints(m.Geometry, proj)
		switch m.Role {
		case "outer":
			if !haveOuter {
				poly.Outer = ring
				haveOuter = true
			}
		case "inner":
			poly.Holes = append(poly.Holes, ring)
		}
	}
	if !haveOuter {
		return nil
	}
	return []overlay.Way{{Geometry: "polygon", Tags: el.Tags, Polygon: poly}}
}

func projectPoints(geom []overpassLatLon, proj coord.Projection) []overlay.Point {
	pts := make([]overlay.Point, len(geom))
	for i, g := range geom {
		x, z := proj.FromWGS84(g.Lon, g.Lat)
		pts[i] = overlay.Point{X: x, Z: z}
	}
	return pts
}
