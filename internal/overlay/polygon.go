package overlay

import (
	"math"
	"sort"

	"github.com/rclancey/earcut"
)

// Polygon is an outer ring plus zero or more hole rings, all in world
// block-space metres (already reprojected/placed by the caller). Rings
// are not assumed closed (first point need not repeat as last).
type Polygon struct {
	Outer []Point
	Holes [][]Point
}

// scanlineThreshold is the outer-ring vertex count at or above which the
// earcut triangulation fast path is used instead of a scanline fill
// (spec §9 domain-stack note: earcut accelerates point-in-polygon tests
// for large OSM multipolygons).
const scanlineThreshold = 64

// RasterizePolygon fills p with the even-odd rule, holes preserved
// ("doughnut holes"), and returns the set of covered world columns.
func RasterizePolygon(p Polygon) map[[2]int]bool {
	if len(p.Outer) >= scanlineThreshold {
		if hits, ok := rasterizeWithEarcut(p); ok {
			return hits
		}
	}
	return rasterizeScanline(p)
}

// rasterizeScanline is the even-odd scanline fill: for each integer Z row
// in the outer ring's bounding box, compute all ring-edge X crossings
// (outer and holes together, since even-odd naturally punches holes),
// sort them, and fill between crossing pairs.
func rasterizeScanline(p Polygon) map[[2]int]bool {
	hits := make(map[[2]int]bool)
	if len(p.Outer) < 3 {
		return hits
	}

	rings := append([][]Point{p.Outer}, p.Holes...)
	minZ, maxZ := boundsZ(p.Outer)

	for z := int(math.Floor(minZ)); z <= int(math.Ceil(maxZ)); z++ {
		scanY := float64(z) + 0.5
		var crossings []float64
		for _, ring := range rings {
			crossings = append(crossings, ringCrossings(ring, scanY)...)
		}
		sort.Float64s(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			x0 := int(math.Floor(crossings[i]))
			x1 := int(math.Ceil(crossings[i+1]))
			for x := x0; x <= x1; x++ {
				if float64(x)+0.5 >= crossings[i] && float64(x)+0.5 <= crossings[i+1] {
					hits[[2]int{x, z}] = true
				}
			}
		}
	}
	return hits
}

func ringCrossings(ring []Point, scanY float64) []float64 {
	var xs []float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if (a.Z <= scanY && b.Z > scanY) || (b.Z <= scanY && a.Z > scanY) {
			t := (scanY - a.Z) / (b.Z - a.Z)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	return xs
}

func boundsZ(ring []Point) (minZ, maxZ float64) {
	minZ, maxZ = math.Inf(1), math.Inf(-1)
	for _, p := range ring {
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	return
}

// rasterizeWithEarcut triangulates the outer ring (with holes) via earcut
// and fills each triangle's bounding box, testing membership with a
// barycentric point-in-triangle check. Falls back (ok=false) on
// triangulation failure so the caller can retry with the scanline path.
func rasterizeWithEarcut(p Polygon) (map[[2]int]bool, bool) {
	var flat []float64
	var holeIndices []int
	for _, pt := range p.Outer {
		flat = append(flat, pt.X, pt.Z)
	}
	for _, hole := range p.Holes {
		holeIndices = append(holeIndices, len(flat)/2)
		for _, pt := range hole {
			flat = append(flat, pt.X, pt.Z)
		}
	}

	indices := earcut.Earcut(flat, holeIndices, 2)
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, false
	}

	hits := make(map[[2]int]bool)
	for t := 0; t+3 <= len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		ax, az := flat[i0*2], flat[i0*2+1]
		bx, bz := flat[i1*2], flat[i1*2+1]
		cx, cz := flat[i2*2], flat[i2*2+1]
		fillTriangle(ax, az, bx, bz, cx, cz, hits)
	}
	return hits, true
}

func fillTriangle(ax, az, bx, bz, cx, cz float64, hits map[[2]int]bool) {
	minX := int(math.Floor(math.Min(ax, math.Min(bx, cx))))
	maxX := int(math.Ceil(math.Max(ax, math.Max(bx, cx))))
	minZ := int(math.Floor(math.Min(az, math.Min(bz, cz))))
	maxZ := int(math.Ceil(math.Max(az, math.Max(bz, cz))))

	denom := (bz-cz)*(ax-cx) + (cx-bx)*(az-cz)
	if denom == 0 {
		return
	}
	for z := minZ; z <= maxZ; z++ {
		py := float64(z) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			l1 := ((bz-cz)*(px-cx) + (cx-bx)*(py-cz)) / denom
			l2 := ((cz-az)*(px-cx) + (ax-cx)*(py-cz)) / denom
			l3 := 1 - l1 - l2
			if l1 >= 0 && l2 >= 0 && l3 >= 0 {
				hits[[2]int{x, z}] = true
			}
		}
	}
}
