package raster

import (
	"fmt"
	"math"
)

// Bounds is a half-open rectangle [MinX,MaxX) x [MinZ,MaxZ) in world block
// coordinates, used both for `--bounds` cropping and for reporting.
type Bounds struct {
	MinX, MinZ, MaxX, MaxZ int
}

// Empty reports whether the bounds describe no area.
func (b Bounds) Empty() bool { return b.MaxX <= b.MinX || b.MaxZ <= b.MinZ }

// ElevationGrid is the dense, shared, read-only-after-construction mosaic
// described in spec §3.
type ElevationGrid struct {
	OriginModelX, OriginModelZ float64
	Bounds                     Bounds
	data                       []float32 // row-major over Bounds, len == width*height

	MinHeight, MaxHeight float64 // metres, ignoring NaN
}

func (g *ElevationGrid) width() int  { return g.Bounds.MaxX - g.Bounds.MinX }
func (g *ElevationGrid) height() int { return g.Bounds.MaxZ - g.Bounds.MinZ }

// ElevationAt returns the elevation in metres at world column (x, z), or
// NaN if (x,z) is outside the grid or has no data. Implements
// style.ElevationSampler.
func (g *ElevationGrid) ElevationAt(x, z int) float64 {
	if x < g.Bounds.MinX || x >= g.Bounds.MaxX || z < g.Bounds.MinZ || z >= g.Bounds.MaxZ {
		return math.NaN()
	}
	idx := (z-g.Bounds.MinZ)*g.width() + (x - g.Bounds.MinX)
	return float64(g.data[idx])
}

func (g *ElevationGrid) set(x, z int, v float32) {
	idx := (z-g.Bounds.MinZ)*g.width() + (x - g.Bounds.MinX)
	g.data[idx] = v
}

// InconsistentTileResolutionError is returned when tiles do not share a
// common pixel size (spec §4.2).
type InconsistentTileResolutionError struct {
	Index int
	Got   [2]float64
	Want  [2]float64
}

func (e *InconsistentTileResolutionError) Error() string {
	return fmt.Sprintf("inconsistent tile resolution: tile %d has pixel size (%.9f,%.9f), want (%.9f,%.9f)",
		e.Index, e.Got[0], e.Got[1], e.Want[0], e.Want[1])
}

// BoundsError is returned when a requested --bounds crop does not intersect
// any input tile (spec §7).
type BoundsError struct {
	Requested Bounds
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bounds %+v do not intersect any input tile", e.Requested)
}

const tileResolutionEpsilon = 1e-6

// footprint is a tile's placement in world block coordinates.
type footprint struct {
	tile             Tile
	minX, maxX       int // [minX,maxX)
	minZ, maxZ       int // [minZ,maxZ)
}

// Build mosaics tiles into a single dense ElevationGrid per spec §4.2.
// If crop is non-nil, the grid is clipped to those world bounds before
// allocation and tiles wholly outside it are skipped.
func Build(tiles []Tile, crop *Bounds) (*ElevationGrid, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("mosaic: no tiles")
	}

	dx0, dy0 := tiles[0].Transform.PixelSizeX, tiles[0].Transform.PixelSizeY
	for i, t := range tiles[1:] {
		dx, dy := t.Transform.PixelSizeX, t.Transform.PixelSizeY
		if math.Abs(dx-dx0) > tileResolutionEpsilon || math.Abs(dy-dy0) > tileResolutionEpsilon {
			return nil, &InconsistentTileResolutionError{Index: i + 1, Got: [2]float64{dx, dy}, Want: [2]float64{dx0, dy0}}
		}
	}

	// Global origin: west edge (min X) and north edge (max Y) across all tiles.
	originX := math.Inf(1)
	originY := math.Inf(-1)
	for _, t := range tiles {
		if t.Transform.OriginX < originX {
			originX = t.Transform.OriginX
		}
		if t.Transform.OriginY > originY {
			originY = t.Transform.OriginY
		}
	}

	footprints := make([]footprint, len(tiles))
	unionBounds := Bounds{MinX: math.MaxInt, MinZ: math.MaxInt, MaxX: math.MinInt, MaxZ: math.MinInt}
	for i, t := range tiles {
		minX := int(math.Round((t.Transform.OriginX - originX) / dx0))
		minZ := int(math.Round((originY - t.Transform.OriginY) / dy0))
		fp := footprint{tile: t, minX: minX, maxX: minX + t.Width, minZ: minZ, maxZ: minZ + t.Height}
		footprints[i] = fp
		if fp.minX < unionBounds.MinX {
			unionBounds.MinX = fp.minX
		}
		if fp.maxX > unionBounds.MaxX {
			unionBounds.MaxX = fp.maxX
		}
		if fp.minZ < unionBounds.MinZ {
			unionBounds.MinZ = fp.minZ
		}
		if fp.maxZ > unionBounds.MaxZ {
			unionBounds.MaxZ = fp.maxZ
		}
	}

	finalBounds := unionBounds
	if crop != nil {
		finalBounds = intersect(unionBounds, *crop)
		if finalBounds.Empty() {
			return nil, &BoundsError{Requested: *crop}
		}
	}

	grid := &ElevationGrid{
		OriginModelX: originX,
		OriginModelZ: originY,
		Bounds:       finalBounds,
	}
	grid.data = make([]float32, grid.width()*grid.height())
	for i := range grid.data {
		grid.data[i] = float32(math.NaN())
	}

	for _, fp := range footprints {
		overlap := intersect(Bounds{fp.minX, fp.minZ, fp.maxX, fp.maxZ}, finalBounds)
		if overlap.Empty() {
			continue // tile wholly outside the (possibly cropped) bounds
		}
		for z := overlap.MinZ; z < overlap.MaxZ; z++ {
			row := z - fp.minZ
			for x := overlap.MinX; x < overlap.MaxX; x++ {
				col := x - fp.minX
				grid.set(x, z, fp.tile.sampleAt(col, row))
			}
		}
	}

	grid.MinHeight, grid.MaxHeight = minMaxIgnoringNaN(grid.data)

	return grid, nil
}

func intersect(a, b Bounds) Bounds {
	r := Bounds{
		MinX: maxInt(a.MinX, b.MinX),
		MinZ: maxInt(a.MinZ, b.MinZ),
		MaxX: minInt(a.MaxX, b.MaxX),
		MaxZ: minInt(a.MaxZ, b.MaxZ),
	}
	return r
}

func minMaxIgnoringNaN(data []float32) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range data {
		if math.IsNaN(float64(v)) {
			continue
		}
		found = true
		fv := float64(v)
		if fv < min {
			min = fv
		}
		if fv > max {
			max = fv
		}
	}
	if !found {
		return 0, 0
	}
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
