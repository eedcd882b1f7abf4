package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/defvs/francegen/internal/config"
)

// TileMatrix describes the subset of WMTS GetCapabilities metrics needed
// to compute tile coverage (spec §4.5 WMTS path); GetCapabilities XML
// parsing itself is an external collaborator (spec §1).
type TileMatrix struct {
	// TopLeftX, TopLeftY is the matrix origin in the projected CRS.
	TopLeftX, TopLeftY float64
	// Metres per pixel at this matrix (ScaleDenominator × 0.00028 m).
	MetresPerPixel float64
	TileWidth      int
	TileHeight     int
	MatrixWidth    int
	MatrixHeight   int
}

// TileCoord identifies one WMTS tile within a matrix.
type TileCoord struct {
	Col, Row int
}

// CoveringTiles returns the tiles of m overlapping [minX,maxX]x[minZ,maxZ]
// (a bounding box already expanded by bbox_margin_m), erroring if that
// exceeds maxTiles (spec §4.5 "fail if tiles exceed max_tiles").
func CoveringTiles(m TileMatrix, minX, minZ, maxX, maxZ float64, maxTiles int) ([]TileCoord, error) {
	tileSpanX := float64(m.TileWidth) * m.MetresPerPixel
	tileSpanZ := float64(m.TileHeight) * m.MetresPerPixel

	colMin := int((minX - m.TopLeftX) / tileSpanX)
	colMax := int((maxX - m.TopLeftX) / tileSpanX)
	rowMin := int((m.TopLeftY - maxZ) / tileSpanZ)
	rowMax := int((m.TopLeftY - minZ) / tileSpanZ)

	if colMin < 0 {
		colMin = 0
	}
	if rowMin < 0 {
		rowMin = 0
	}
	if colMax >= m.MatrixWidth {
		colMax = m.MatrixWidth - 1
	}
	if rowMax >= m.MatrixHeight {
		rowMax = m.MatrixHeight - 1
	}

	var tiles []TileCoord
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			tiles = append(tiles, TileCoord{Col: col, Row: row})
			if len(tiles) > maxTiles {
				return nil, fmt.Errorf("overlay: WMTS coverage needs more than %d tiles", maxTiles)
			}
		}
	}
	return tiles, nil
}

// Canvas is a single decoded-and-composited raster covering the requested
// bounding box, resampled to one pixel per world block so per-column
// sampling afterwards is a plain array index (spec §4.5 "For each world
// column, sample the corresponding pixel").
type Canvas struct {
	img             *image.RGBA
	originX, originZ float64
}

// NewCanvas composites tiles (already decoded; a missing or failed tile
// decode is passed as nil and replaced by a transparent tile, per spec §7)
// into one working raster anchored at (originX, originZ) in the projected
// CRS, then resamples it from the matrix's native metres-per-pixel down to
// one pixel per world block using a bilinear scaler. WMTS matrices are
// rarely published at exactly 1 metre/pixel, so this is where overlay
// pixels actually land on integer world columns rather than being
// nearest-neighbor snapped.
func NewCanvas(m TileMatrix, tiles map[TileCoord]image.Image, minX, minZ, maxX, maxZ float64) *Canvas {
	nativeWidthPx := int((maxX-minX)/m.MetresPerPixel) + 1
	nativeHeightPx := int((maxZ-minZ)/m.MetresPerPixel) + 1
	native := image.NewRGBA(image.Rect(0, 0, nativeWidthPx, nativeHeightPx))

	tileSpanX := float64(m.TileWidth) * m.MetresPerPixel
	tileSpanZ := float64(m.TileHeight) * m.MetresPerPixel

	for coord, tileImg := range tiles {
		tileOriginX := m.TopLeftX + float64(coord.Col)*tileSpanX
		tileOriginZ := m.TopLeftY - float64(coord.Row)*tileSpanZ
		destX := int((tileOriginX - minX) / m.MetresPerPixel)
		destY := int((maxZ - tileOriginZ) / m.MetresPerPixel)

		if tileImg == nil {
			continue // transparent tile: canvas already zero-valued there
		}
		draw.Draw(native, image.Rect(destX, destY, destX+m.TileWidth, destY+m.TileHeight),
			tileImg, image.Point{}, draw.Src)
	}

	blockWidthPx := int(maxX-minX) + 1
	blockHeightPx := int(maxZ-minZ) + 1
	canvas := image.NewRGBA(image.Rect(0, 0, blockWidthPx, blockHeightPx))
	xdraw.BiLinear.Scale(canvas, canvas.Bounds(), native, native.Bounds(), xdraw.Src, nil)

	return &Canvas{img: canvas, originX: minX, originZ: maxZ}
}

// SampleAt returns the pixel at world column (x, z), or (color.RGBA{}, false)
// when the column falls outside the canvas.
func (c *Canvas) SampleAt(x, z int) (color.RGBA, bool) {
	px := int(float64(x) - c.originX)
	py := int(c.originZ - float64(z))
	b := c.img.Bounds()
	if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
		return color.RGBA{}, false
	}
	return c.img.RGBAAt(px, py), true
}

// MatchColorRule reports whether pixel p satisfies rule, per spec §4.5:
// per-channel tolerance in RGB space (default), or a perceptual Lab-space
// distance when rule.Space == "lab".
func MatchColorRule(p color.RGBA, rule config.WMTSColorRule) bool {
	threshold := rule.AlphaThreshold
	if threshold == 0 {
		threshold = 255
	}
	if p.A < threshold {
		return false
	}

	if rule.Space == "lab" {
		pc := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
		tc := colorful.Color{
			R: float64(rule.Target[0]) / 255,
			G: float64(rule.Target[1]) / 255,
			B: float64(rule.Target[2]) / 255,
		}
		return pc.DistanceLab(tc) <= rule.LabTolerance
	}

	return absDiff(p.R, rule.Target[0]) <= rule.Tolerance &&
		absDiff(p.G, rule.Target[1]) <= rule.Tolerance &&
		absDiff(p.B, rule.Target[2]) <= rule.Tolerance
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
