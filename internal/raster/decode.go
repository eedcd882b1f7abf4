package raster

import (
	"fmt"
	"strconv"

	"github.com/defvs/francegen/internal/cog"
)

// DecodeElevationTile assembles a full-resolution Tile (S1 per spec §5)
// from a GeoTIFF reader, stitching level-0's internal tile grid into one
// dense row-major float32 array. Only band 0 is kept: DEM inputs are
// single-band.
func DecodeElevationTile(r *cog.Reader) (Tile, error) {
	if !r.IsFloat() {
		return Tile{}, fmt.Errorf("raster: %s is not a float GeoTIFF (DEM input required)", r.Path())
	}

	const level = 0
	width, height := r.IFDWidth(level), r.IFDHeight(level)
	tileSize := r.IFDTileSize(level)
	tileW, tileH := tileSize[0], tileSize[1]
	if tileW == 0 || tileH == 0 {
		return Tile{}, fmt.Errorf("raster: %s has zero-sized internal tiles", r.Path())
	}

	hasNoData := false
	var noData float32
	if s := r.NoData(); s != "" {
		if v, err := strconv.ParseFloat(s, 32); err == nil {
			noData = float32(v)
			hasNoData = true
		}
	}

	samples := make([]float32, width*height)
	if hasNoData {
		for i := range samples {
			samples[i] = noData
		}
	}

	cols := (width + tileW - 1) / tileW
	rows := (height + tileH - 1) / tileH

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			data, w, h, err := r.ReadFloatTile(level, col, row)
			if err != nil {
				return Tile{}, fmt.Errorf("raster: decode tile (%d,%d) of %s: %w", col, row, r.Path(), err)
			}
			if data == nil {
				continue // empty (sparse) tile: samples here keep the prefilled nodata value
			}
			baseX, baseY := col*tileW, row*tileH
			copyTileInto(samples, width, height, baseX, baseY, data, w, h)
		}
	}

	geo := r.GeoInfo()

	return Tile{
		Transform: AffineTransform{
			OriginX:    geo.OriginX,
			OriginY:    geo.OriginY,
			PixelSizeX: geo.PixelSizeX,
			PixelSizeY: geo.PixelSizeY,
		},
		Width:     width,
		Height:    height,
		Samples:   samples,
		NoData:    noData,
		HasNoData: hasNoData,
	}, nil
}

// copyTileInto copies a tileW x tileH block of samples into dst (a
// width x height row-major grid) at (baseX, baseY), clipping against
// dst's bounds for edge tiles that overhang the image.
func copyTileInto(dst []float32, width, height, baseX, baseY int, tile []float32, tileW, tileH int) {
	for ty := 0; ty < tileH; ty++ {
		dy := baseY + ty
		if dy >= height {
			break
		}
		for tx := 0; tx < tileW; tx++ {
			dx := baseX + tx
			if dx >= width {
				break
			}
			dst[dy*width+dx] = tile[ty*tileW+tx]
		}
	}
}

// DecodeElevationTiles decodes every reader in sources, stopping at the
// first error (spec §7 fail-fast at the stage boundary).
func DecodeElevationTiles(sources []*cog.Reader) ([]Tile, error) {
	tiles := make([]Tile, len(sources))
	for i, r := range sources {
		t, err := DecodeElevationTile(r)
		if err != nil {
			return nil, err
		}
		tiles[i] = t
	}
	return tiles, nil
}
