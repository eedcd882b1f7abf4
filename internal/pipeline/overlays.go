package pipeline

import (
	"context"

	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/coord"
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/netfetch"
	"github.com/defvs/francegen/internal/overlay"
	"github.com/defvs/francegen/internal/raster"
)

// fetchOverlays runs S3 (overlay fetch) and S4 (overlay rasterization),
// appending every matching column directive into idx.
func fetchOverlays(ctx context.Context, cfg RunConfig, grid *raster.ElevationGrid, proj coord.Projection, idx *overlay.Index) error {
	margin := cfg.Profile.Overlays.BBoxMarginM
	minX, minZ, maxX, maxZ := modelBounds(grid, margin)
	origin := coordmap.Origin{X: grid.OriginModelX, Z: grid.OriginModelZ}

	if len(cfg.Profile.Overlays.OSMLayers) > 0 {
		if cfg.Fetcher == nil {
			return &Error{Kind: ConfigError, Msg: "osm_layers configured but no fetcher was supplied"}
		}
		if err := fetchOSM(ctx, cfg, minX, minZ, maxX, maxZ, proj, origin, idx); err != nil {
			return err
		}
	}

	for _, layer := range cfg.Profile.Overlays.WMTSLayers {
		if cfg.Fetcher == nil || cfg.Capabilities == nil {
			return &Error{Kind: ConfigError, Msg: "wmts_layers configured but no fetcher/capabilities resolver was supplied"}
		}
		if err := fetchWMTSLayer(ctx, cfg, layer, minX, minZ, maxX, maxZ, idx); err != nil {
			return err
		}
	}
	return nil
}

func fetchOSM(ctx context.Context, cfg RunConfig, minX, minZ, maxX, maxZ float64, proj coord.Projection, origin coordmap.Origin, idx *overlay.Index) error {
	overpassURL := cfg.Profile.Overlays.OverpassURL
	if overpassURL == "" {
		overpassURL = "https://overpass-api.de/api/interpreter"
	}

	bbox := netfetch.BuildOverpassBBox(proj, minX, minZ, maxX, maxZ)
	query := netfetch.BuildOverpassQuery(cfg.Profile.Overlays.OSMLayers, bbox)
	reqURL := netfetch.OverpassRequestURL(overpassURL, query)

	body, err := cfg.Fetcher.Fetch(ctx, reqURL)
	if err != nil {
		return Wrap(OverlayFetchError, "fetch overpass data", err)
	}

	ways, err := netfetch.DecodeOverpassWays(body, proj)
	if err != nil {
		return Wrap(OverlayFetchError, "decode overpass response", err)
	}

	placed := overlay.PlaceWays(ways, origin)
	overlay.RasterizeOSM(idx, cfg.Profile.Overlays.OSMLayers, placed)
	return nil
}

func fetchWMTSLayer(ctx context.Context, cfg RunConfig, layer config.WMTSLayer, minX, minZ, maxX, maxZ float64, idx *overlay.Index) error {
	src, err := cfg.Capabilities.Resolve(ctx, layer.CapabilitiesURL, layer.TileMatrix)
	if err != nil {
		return Wrap(OverlayFetchError, "resolve wmts capabilities", err)
	}

	coords, err := overlay.CoveringTiles(src.Matrix, minX, minZ, maxX, maxZ, layer.MaxTiles)
	if err != nil {
		return Wrap(OverlayRasterizeError, "compute wmts tile coverage", err)
	}

	decoded := make([]overlay.DecodedTile, 0, len(coords))
	for _, c := range coords {
		body, err := cfg.Fetcher.Fetch(ctx, src.TileURL(c))
		if err != nil {
			return Wrap(OverlayFetchError, "fetch wmts tile", err)
		}
		tile, err := netfetch.DecodeWMTSTile(c, body)
		if err != nil {
			decoded = append(decoded, overlay.DecodedTile{Coord: c, Image: nil})
			continue
		}
		decoded = append(decoded, tile)
	}

	overlay.RasterizeWMTS(idx, layer, src.Matrix, decoded, minX, minZ, maxX, maxZ)
	return nil
}
