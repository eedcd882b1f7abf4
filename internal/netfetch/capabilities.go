package netfetch

import (
	"context"

	"github.com/defvs/francegen/internal/overlay"
)

// WMTSSource is a resolved WMTS tile source: the matrix geometry needed for
// coverage math (overlay.CoveringTiles) plus a function building the fetch
// URL for one tile. Producing this from a GetCapabilities document is the
// collaborator's job, not core's (spec §1) — WMTS capabilities XML parsing
// never happens in this package.
type WMTSSource struct {
	Matrix  overlay.TileMatrix
	TileURL func(coord overlay.TileCoord) string
}

// CapabilitiesResolver is the second collaborator boundary spec §1 leaves
// out of core: resolving a capabilities document + tile matrix set name
// into a usable WMTSSource. Injected by the CLI layer, same as Fetcher.
type CapabilitiesResolver interface {
	Resolve(ctx context.Context, capabilitiesURL, tileMatrixSet string) (WMTSSource, error)
}
