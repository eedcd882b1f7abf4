// Package raster ingests decoded heightmap tiles (the GeoTIFF-decode
// collaborator's output per spec §1) and mosaics them into a single dense
// elevation grid (spec §4.2).
package raster

import "math"

// AffineTransform maps pixel (col, row) to CRS (x, y). Field names mirror
// the teacher's GeoTIFF georeferencing vocabulary (origin + pixel size).
type AffineTransform struct {
	OriginX    float64 // easting of upper-left corner
	OriginY    float64 // northing of upper-left corner
	PixelSizeX float64 // pixel width in CRS units (positive)
	PixelSizeY float64 // pixel height in CRS units (positive)
}

// ToCRS converts a pixel (col, row) to a CRS coordinate at the pixel's
// upper-left corner.
func (a AffineTransform) ToCRS(col, row int) (x, y float64) {
	x = a.OriginX + float64(col)*a.PixelSizeX
	y = a.OriginY - float64(row)*a.PixelSizeY
	return
}

// Tile is a single decoded heightmap tile, the contract handed to the core
// by the (out-of-scope) GeoTIFF-decode collaborator.
type Tile struct {
	Transform AffineTransform
	Width     int
	Height    int
	Samples   []float32 // row-major, len == Width*Height
	NoData    float32
	HasNoData bool
}

// sampleAt returns the tile's elevation at pixel (col, row), or NaN if
// out of range or equal to the configured nodata value.
func (t Tile) sampleAt(col, row int) float32 {
	if col < 0 || col >= t.Width || row < 0 || row >= t.Height {
		return float32(math.NaN())
	}
	v := t.Samples[row*t.Width+col]
	if t.HasNoData && v == t.NoData {
		return float32(math.NaN())
	}
	return v
}
