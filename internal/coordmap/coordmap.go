// Package coordmap converts between model-space metres, world block
// coordinates, chunk coordinates, and region coordinates. All arithmetic
// funnels through this package; raw arithmetic on model coordinates
// elsewhere is a bug (see spec design note on Z inversion).
package coordmap

import "math"

// VerticalShift is added to a rounded elevation in metres to obtain a
// world block Y coordinate. The extended build range is [-2048, 2031].
const VerticalShift = -2048

// MinY and MaxY bound the extended world height domain used by francegen.
const (
	MinY = -2048
	MaxY = 2031
)

// Origin is the real-world model coordinate that maps to world block (0,0).
type Origin struct {
	X, Z float64
}

// ModelToWorld converts a model-space coordinate to world block coordinates.
// The Z axis is inverted: increasing model Y (geographic north) corresponds
// to decreasing world Z.
func ModelToWorld(o Origin, mx, mz float64) (x, z int) {
	x = int(math.Floor(mx - o.X))
	z = int(math.Floor(o.Z - mz))
	return
}

// WorldToChunk converts world block coordinates to chunk coordinates.
func WorldToChunk(x, z int) (cx, cz int) {
	return FloorDiv(x, 16), FloorDiv(z, 16)
}

// ChunkToRegion converts chunk coordinates to region coordinates.
func ChunkToRegion(cx, cz int) (rx, rz int) {
	return FloorDiv(cx, 32), FloorDiv(cz, 32)
}

// HeightToY converts an elevation in metres to a clamped world block Y.
func HeightToY(elevationMetres float64) int {
	y := int(math.Round(elevationMetres)) + VerticalShift
	return ClampY(y)
}

// ClampY clamps a Y coordinate to the extended build range.
func ClampY(y int) int {
	if y < MinY {
		return MinY
	}
	if y > MaxY {
		return MaxY
	}
	return y
}

// FloorDiv performs arithmetic-floor integer division (rounds toward -∞),
// unlike Go's truncating "/" operator on negative operands.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a mod b with the sign of b (Euclidean-style, matches
// FloorDiv: a == FloorDiv(a,b)*b + FloorMod(a,b)).
func FloorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// LocateResult is the output of the `locate` subcommand.
type LocateResult struct {
	X, Z   int
	CX, CZ int
	Y      *int // nil when no height was supplied
}

// Locate resolves a real-world coordinate (optionally with a height in
// metres) to world/chunk coordinates, per spec §4.1.
func Locate(o Origin, realX, realZ float64, heightMetres *float64) LocateResult {
	x, z := ModelToWorld(o, realX, realZ)
	cx, cz := WorldToChunk(x, z)
	res := LocateResult{X: x, Z: z, CX: cx, CZ: cz}
	if heightMetres != nil {
		y := HeightToY(*heightMetres)
		res.Y = &y
	}
	return res
}
