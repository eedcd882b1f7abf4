package netfetch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/defvs/francegen/internal/overlay"
)

// DecodeWMTSTile decodes a fetched PNG tile body into an overlay.DecodedTile
// for the given coordinate. GeoTIFF decoding stays out of core per spec §1,
// but PNG is a lightweight, universally-available stdlib format, so the
// WMTS raster path decodes it here rather than pushing image.Image
// construction onto the fetch collaborator.
func DecodeWMTSTile(coord overlay.TileCoord, body []byte) (overlay.DecodedTile, error) {
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return overlay.DecodedTile{}, fmt.Errorf("netfetch: decode wmts tile %+v: %w", coord, err)
	}
	return overlay.DecodedTile{Coord: coord, Image: img}, nil
}
