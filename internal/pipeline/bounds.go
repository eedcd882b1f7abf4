package pipeline

import (
	"github.com/defvs/francegen/internal/cog"
	"github.com/defvs/francegen/internal/raster"
)

// Bounds implements `francegen bounds`: decode every input tile and return
// their union bounding box in world block coordinates (spec §4.8, §6).
func Bounds(tifFolder string) (raster.Bounds, error) {
	tifPaths, err := CollectTIFFs(tifFolder)
	if err != nil {
		return raster.Bounds{}, err
	}

	readers, err := cog.OpenAll(tifPaths)
	if err != nil {
		return raster.Bounds{}, Wrap(IoError, "open input tiles", err)
	}
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	tiles, err := raster.DecodeElevationTiles(readers)
	if err != nil {
		return raster.Bounds{}, Wrap(TileDecodeError, "decode input tiles", err)
	}

	grid, err := raster.Build(tiles, nil)
	if err != nil {
		return raster.Bounds{}, Wrap(TileDecodeError, "build mosaic", err)
	}
	return grid.Bounds, nil
}
