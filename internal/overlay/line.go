package overlay

import "math"

// Point is a model-space (x, z) coordinate in metres, already in the
// target projected CRS (spec Non-goals: no reprojection between CRSes).
type Point struct {
	X, Z float64
}

// RasterizeLine buffers a polyline by widthBlocks/2 on each side and
// returns the set of world columns the buffer covers, per spec §4.5's
// "thick-segment fill".
func RasterizeLine(points []Point, widthBlocks float64) map[[2]int]bool {
	hits := make(map[[2]int]bool)
	if len(points) < 2 || widthBlocks <= 0 {
		return hits
	}
	half := widthBlocks / 2
	for i := 0; i+1 < len(points); i++ {
		rasterizeSegment(points[i], points[i+1], half, hits)
	}
	return hits
}

func rasterizeSegment(a, b Point, half float64, hits map[[2]int]bool) {
	minX := int(math.Floor(math.Min(a.X, b.X) - half))
	maxX := int(math.Ceil(math.Max(a.X, b.X) + half))
	minZ := int(math.Floor(math.Min(a.Z, b.Z) - half))
	maxZ := int(math.Ceil(math.Max(a.Z, b.Z) + half))

	for z := minZ; z <= maxZ; z++ {
		for x := minX; x <= maxX; x++ {
			if distanceToSegment(float64(x)+0.5, float64(z)+0.5, a, b) <= half {
				hits[[2]int{x, z}] = true
			}
		}
	}
}

// distanceToSegment returns the distance from point (px, pz) to the
// segment a-b.
func distanceToSegment(px, pz float64, a, b Point) float64 {
	dx, dz := b.X-a.X, b.Z-a.Z
	lenSq := dx*dx + dz*dz
	if lenSq == 0 {
		return math.Hypot(px-a.X, pz-a.Z)
	}
	t := ((px-a.X)*dx + (pz-a.Z)*dz) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX := a.X + t*dx
	projZ := a.Z + t*dz
	return math.Hypot(px-projX, pz-projZ)
}
