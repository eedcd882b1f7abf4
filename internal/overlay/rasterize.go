package overlay

import (
	"image"

	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/style"
)

// Way is one decoded OSM feature: a line (open polyline) or a polygon
// (closed outer ring plus optional holes), with its source tags. OSM JSON
// decoding itself happens in internal/netfetch/overpass.go; this package
// only consumes the decoded form.
type Way struct {
	Geometry string // "line" or "polygon"
	Tags     map[string]string
	Line     []Point
	Polygon  Polygon
}

// RasterizeOSM applies layers against ways, appending a PaintDirective per
// hit column into idx (spec §4.5 OSM path).
func RasterizeOSM(idx *Index, layers []config.OSMLayer, ways []Way) {
	for _, layer := range layers {
		for insertOrder, way := range waysMatching(layer, ways) {
			patch := patchFromConfig(layer.Style)
			var hits map[[2]int]bool

			switch layer.Geometry {
			case "line":
				widthM := ResolveWidth(layer.WidthM, layer.Width, way.Tags)
				hits = RasterizeLine(way.Line, widthM)
			case "polygon":
				hits = RasterizePolygon(way.Polygon)
				if h, ok := ResolveExtrusionHeight(layer.Extrusion); ok {
					patch.Extrusion = &style.ExtrusionSpec{
						HeightBlocks: uint16(h),
						Block:        style.BlockID(layer.Extrusion.Block),
					}
				}
			default:
				continue
			}

			for col := range hits {
				idx.Add(col[0], col[1], style.PaintDirective{
					LayerIndex:     int32(layer.LayerIndex),
					Pass:           style.PassOSM,
					InsertionOrder: uint32(insertOrder),
					Patch:          patch,
				})
			}
		}
	}
}

// waysMatching filters ways by geometry kind and the layer's tag filter
// (every configured tag key/value pair must match; an empty filter
// matches everything of that geometry kind). An invalid/degenerate way
// (fewer than 2 line points, fewer than 3 polygon outer points) is
// dropped with no directive emitted (spec §7: "An individual OSM feature
// that fails geometry validation is dropped with a warning").
func waysMatching(layer config.OSMLayer, ways []Way) []Way {
	var out []Way
	for _, w := range ways {
		if w.Geometry != layer.Geometry {
			continue
		}
		if layer.Geometry == "line" && len(w.Line) < 2 {
			continue
		}
		if layer.Geometry == "polygon" && len(w.Polygon.Outer) < 3 {
			continue
		}
		if !tagsMatch(layer.Tags, w.Tags) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func tagsMatch(want, got map[string]string) bool {
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func patchFromConfig(p config.OverlayStylePatch) style.StylePatch {
	var out style.StylePatch
	if p.SurfaceBlock != "" {
		b := style.BlockID(p.SurfaceBlock)
		out.SurfaceBlock = &b
	}
	if p.SubsurfaceBlock != "" {
		b := style.BlockID(p.SubsurfaceBlock)
		out.SubsurfaceBlock = &b
	}
	if p.TopThickness != nil {
		t := uint8(*p.TopThickness)
		out.TopThickness = &t
	}
	if p.Biome != "" {
		b := style.BiomeID(p.Biome)
		out.Biome = &b
	}
	if p.Extrusion != nil && p.Extrusion.HeightM != nil {
		out.Extrusion = &style.ExtrusionSpec{
			HeightBlocks: uint16(*p.Extrusion.HeightM),
			Block:        style.BlockID(p.Extrusion.Block),
		}
	}
	return out
}

// DecodedTile is one fetched-and-decoded WMTS tile image, or nil when
// decoding failed (replaced by a transparent tile per spec §7).
type DecodedTile struct {
	Coord TileCoord
	Image image.Image
}

// RasterizeWMTS applies layers against a set of already-fetched, decoded
// tiles, appending a PaintDirective per matching column into idx (spec
// §4.5 WMTS path).
func RasterizeWMTS(idx *Index, layer config.WMTSLayer, matrix TileMatrix, tiles []DecodedTile, minX, minZ, maxX, maxZ float64) {
	tileMap := make(map[TileCoord]image.Image, len(tiles))
	for _, t := range tiles {
		tileMap[t.Coord] = t.Image
	}
	canvas := NewCanvas(matrix, tileMap, minX, minZ, maxX, maxZ)

	for x := int(minX); x < int(maxX); x++ {
		for z := int(minZ); z < int(maxZ); z++ {
			px, ok := canvas.SampleAt(x, z)
			if !ok {
				continue
			}
			for i, rule := range layer.Colors {
				if !MatchColorRule(px, rule) {
					continue
				}
				idx.Add(x, z, style.PaintDirective{
					LayerIndex:     int32(layer.LayerIndex),
					Pass:           style.PassWMTS,
					InsertionOrder: uint32(i),
					Patch:          patchFromConfig(rule.Style),
				})
				break // first matching color rule wins, per configured order
			}
		}
	}
}
