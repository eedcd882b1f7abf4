package raster

// CoverageGap describes a rectangular no-data region within the mosaic's
// bounds that no input tile covers. Supplements spec §4.2: the original
// spec only describes NaN surfacing as air columns; this adapts the
// teacher's coverage-gap diagnostic (cog.CheckCoverageGaps) onto the exact
// per-cell grid we already have, rather than approximating from tile
// bounding boxes.
type CoverageGap struct {
	MinX, MinZ, MaxX, MaxZ int
}

// CoverageGaps finds contiguous NaN regions in the grid via a flood fill
// and returns their bounding boxes. Returns nil if coverage is complete.
func CoverageGaps(g *ElevationGrid) []CoverageGap {
	w, h := g.width(), g.height()
	if w == 0 || h == 0 {
		return nil
	}
	visited := make([]bool, w*h)

	var gaps []CoverageGap
	for z0 := 0; z0 < h; z0++ {
		for x0 := 0; x0 < w; x0++ {
			idx := z0*w + x0
			if visited[idx] {
				continue
			}
			worldX, worldZ := x0+g.Bounds.MinX, z0+g.Bounds.MinZ
			if !isNaN32(g.data[idx]) {
				visited[idx] = true
				continue
			}

			minX, maxX, minZ, maxZ := worldX, worldX+1, worldZ, worldZ+1
			queue := [][2]int{{x0, z0}}
			visited[idx] = true
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				cx, cz := cur[0], cur[1]
				wx, wz := cx+g.Bounds.MinX, cz+g.Bounds.MinZ
				if wx < minX {
					minX = wx
				}
				if wx+1 > maxX {
					maxX = wx + 1
				}
				if wz < minZ {
					minZ = wz
				}
				if wz+1 > maxZ {
					maxZ = wz + 1
				}
				for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, nz := cx+d[0], cz+d[1]
					if nx < 0 || nx >= w || nz < 0 || nz >= h {
						continue
					}
					nidx := nz*w + nx
					if visited[nidx] {
						continue
					}
					if !isNaN32(g.data[nidx]) {
						visited[nidx] = true
						continue
					}
					visited[nidx] = true
					queue = append(queue, [2]int{nx, nz})
				}
			}

			gaps = append(gaps, CoverageGap{MinX: minX, MinZ: minZ, MaxX: maxX, MaxZ: maxZ})
		}
	}
	return gaps
}

func isNaN32(v float32) bool {
	return v != v
}
