package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/defvs/francegen/internal/anvil"
	"github.com/defvs/francegen/internal/cliprogress"
	"github.com/defvs/francegen/internal/cog"
	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/coord"
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/meta"
	"github.com/defvs/francegen/internal/netfetch"
	"github.com/defvs/francegen/internal/overlay"
	"github.com/defvs/francegen/internal/raster"
	"github.com/defvs/francegen/internal/style"
	"github.com/defvs/francegen/internal/worker"
)

// RunConfig carries everything one `francegen build` invocation needs. The
// Fetcher and Capabilities collaborators are optional: a profile with no
// overlay layers configured never touches either.
type RunConfig struct {
	TifFolder   string
	OutputWorld string
	Threads     int
	MetaOnly    bool
	Profile     config.StyleProfile
	Bounds      *raster.Bounds

	Fetcher      netfetch.Fetcher
	Capabilities netfetch.CapabilitiesResolver

	Progress bool // show a terminal progress bar during S5
}

// Run executes the staged pipeline of spec §5 and returns the metadata
// document it wrote (or would have written, for --meta-only).
func Run(ctx context.Context, cfg RunConfig) (meta.Document, error) {
	tifPaths, err := CollectTIFFs(cfg.TifFolder)
	if err != nil {
		return meta.Document{}, err
	}

	readers, err := cog.OpenAll(tifPaths)
	if err != nil {
		return meta.Document{}, Wrap(IoError, "open input tiles", err)
	}
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	// S1: tile decode.
	tiles, err := raster.DecodeElevationTiles(readers)
	if err != nil {
		return meta.Document{}, Wrap(TileDecodeError, "decode input tiles", err)
	}

	// S2: mosaic assembly.
	grid, err := raster.Build(tiles, cfg.Bounds)
	if err != nil {
		switch e := err.(type) {
		case *raster.InconsistentTileResolutionError:
			return meta.Document{}, Wrap(InconsistentTileResolution, "build mosaic", e)
		case *raster.BoundsError:
			return meta.Document{}, Wrap(BoundsError, "build mosaic", e)
		default:
			return meta.Document{}, Wrap(TileDecodeError, "build mosaic", err)
		}
	}

	if gaps := raster.CoverageGaps(grid); len(gaps) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d coverage gap(s) in mosaic\n", len(gaps))
	}

	// S3/S4: overlay fetch + rasterization, built into one immutable index.
	idx := overlay.NewIndex()
	if len(cfg.Profile.Overlays.OSMLayers) > 0 || len(cfg.Profile.Overlays.WMTSLayers) > 0 {
		epsg := readers[0].EPSG()
		proj := coord.ForEPSG(epsg)
		if proj == nil {
			return meta.Document{}, &Error{Kind: InconsistentTileResolution, Msg: fmt.Sprintf("EPSG:%d has no registered projection, required for overlay fetch", epsg)}
		}
		if err := fetchOverlays(ctx, cfg, grid, proj, idx); err != nil {
			return meta.Document{}, err
		}
	}

	doc := meta.NewDocument(grid.OriginModelX, grid.OriginModelZ,
		grid.Bounds.MinX, grid.Bounds.MaxX, grid.Bounds.MinZ, grid.Bounds.MaxZ,
		grid.MinHeight, grid.MaxHeight)

	if cfg.MetaOnly {
		if err := meta.Write(cfg.OutputWorld, doc); err != nil {
			return meta.Document{}, Wrap(IoError, "write metadata", err)
		}
		return doc, nil
	}

	if err := os.MkdirAll(cfg.OutputWorld, 0o755); err != nil {
		return meta.Document{}, Wrap(IoError, "create world directory", err)
	}

	// S5: chunk build + region write.
	analyzer := style.NewCliffAnalyzer(grid, cfg.Profile)
	resolver, err := style.NewResolver(cfg.Profile, analyzer)
	if err != nil {
		return meta.Document{}, Wrap(ConfigError, "compile style profile", err)
	}

	cxMin, czMin := coordmap.WorldToChunk(grid.Bounds.MinX, grid.Bounds.MinZ)
	cxMax, czMax := coordmap.WorldToChunk(grid.Bounds.MaxX-1, grid.Bounds.MaxZ-1)

	var jobs []worker.ChunkJob
	generated := make(map[[2]int]bool)
	for cz := czMin; cz <= czMax; cz++ {
		for cx := cxMin; cx <= cxMax; cx++ {
			jobs = append(jobs, worker.ChunkJob{CX: cx, CZ: cz})
			generated[[2]int{cx, cz}] = true
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	var bar *cliprogress.Bar
	if cfg.Progress {
		bar = cliprogress.New("Building", "chunks", int64(len(jobs)))
	}

	chunks := worker.BuildChunks(jobs, worker.Config{
		Concurrency: threads,
		Elevation:   grid,
		Resolver:    resolver,
		Analyzer:    analyzer,
		Overlays:    idx,
		Params: anvil.BuildParams{
			DataVersion:      int32(cfg.Profile.DataVersion),
			GenerateFeatures: cfg.Profile.GenerateFeatures,
		},
		OnChunkBuilt: func() {
			if bar != nil {
				bar.Increment()
			}
		},
	})
	if bar != nil {
		bar.Finish()
	}

	for _, p := range anvil.PadChunkSet(generated, int(cfg.Profile.EmptyChunkRadius)) {
		chunks = append(chunks, anvil.EmptyChunk(p[0], p[1], int32(cfg.Profile.DataVersion)))
	}

	for region, regionChunks := range worker.GroupByRegion(chunks) {
		path := anvil.RegionPath(cfg.OutputWorld, region[0], region[1])
		if err := anvil.WriteRegion(path, regionChunks); err != nil {
			return meta.Document{}, Wrap(RegionWriteError, fmt.Sprintf("write region (%d,%d)", region[0], region[1]), err)
		}
	}

	surfaceAtOrigin := 0
	if elev := grid.ElevationAt(0, 0); !math.IsNaN(elev) {
		surfaceAtOrigin = coordmap.HeightToY(elev)
	}
	if err := anvil.WriteLevelDat(cfg.OutputWorld, int32(cfg.Profile.DataVersion), surfaceAtOrigin); err != nil {
		return meta.Document{}, Wrap(IoError, "write level.dat", err)
	}

	if err := meta.Write(cfg.OutputWorld, doc); err != nil {
		return meta.Document{}, Wrap(IoError, "write metadata", err)
	}
	return doc, nil
}

// modelBounds converts the mosaic's world-space bounds back into model-CRS
// coordinates, expanded by marginM on every side, for overlay fetch queries.
func modelBounds(grid *raster.ElevationGrid, marginM float64) (minX, minZ, maxX, maxZ float64) {
	minX = grid.OriginModelX + float64(grid.Bounds.MinX) - marginM
	maxX = grid.OriginModelX + float64(grid.Bounds.MaxX) + marginM
	minZ = grid.OriginModelZ - float64(grid.Bounds.MaxZ) - marginM
	maxZ = grid.OriginModelZ - float64(grid.Bounds.MinZ) + marginM
	return
}
